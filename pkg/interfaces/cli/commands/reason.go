package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

func newReasonCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reason",
		Short: "Manage purchase order cancel reasons",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a cancel reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.services()
			if err != nil {
				return err
			}
			reason, err := a.cancelReasons.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return st.printReasons(cmd, reason)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cancel reasons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.services()
			if err != nil {
				return err
			}
			reasons, err := a.cancelReasons.List(cmd.Context())
			if err != nil {
				return err
			}
			return st.printReasons(cmd, reasons...)
		},
	}

	remove := &cobra.Command{
		Use:   "delete REASON",
		Short: "Delete a cancel reason no order refers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.services()
			if err != nil {
				return err
			}
			id, err := a.resolveReason(cmd, args[0])
			if err != nil {
				return err
			}
			return a.cancelReasons.Delete(cmd.Context(), id)
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

// resolveReason accepts a reason ID or its name
func (a *app) resolveReason(cmd *cobra.Command, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	reasons, err := a.cancelReasons.List(cmd.Context())
	if err != nil {
		return uuid.Nil, err
	}
	for _, reason := range reasons {
		if strings.EqualFold(reason.Name, ref) {
			return reason.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("cancel reason %q: %w", ref, entities.ErrNotFound)
}

func (st *rootState) printReasons(cmd *cobra.Command, reasons ...*entities.CancelReason) error {
	p, err := st.printer(cmd)
	if err != nil {
		return err
	}
	return p.Reasons(reasons)
}
