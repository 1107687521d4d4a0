package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
)

func newOrderCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create, cancel and archive purchase orders",
	}
	cmd.AddCommand(
		newOrderCreateCommand(st),
		newOrderListCommand(st),
		newOrderStateCommand(st),
		newOrderCancelCommand(st),
		newOrderReasonCommand(st),
		newOrderToggleCommand(st, "archive", true),
		newOrderToggleCommand(st, "unarchive", false),
	)
	return cmd
}

func newOrderCreateCommand(st *rootState) *cobra.Command {
	var (
		partner   string
		dateOrder string
		lines     []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft purchase order",
		Example: "  purchasing order create --partner ACME --line BOLT=10 --line NUT=20 " +
			"--date 2020-08-10",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateOrderRequest{PartnerID: partner}
			if dateOrder != "" {
				d, err := time.Parse("2006-01-02", dateOrder)
				if err != nil {
					return fmt.Errorf("invalid order date: %w", err)
				}
				req.DateOrder = d
			}
			for _, l := range lines {
				line, err := parseLine(l)
				if err != nil {
					return err
				}
				req.Lines = append(req.Lines, line)
			}

			a, err := st.services()
			if err != nil {
				return err
			}
			order, err := a.purchaseOrders.CreateOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return st.printOrders(cmd, order)
		},
	}
	cmd.Flags().StringVar(&partner, "partner", "", "Vendor")
	cmd.Flags().StringVar(&dateOrder, "date", "", "Order date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "Order line as PART=QTY, repeatable")
	_ = cmd.MarkFlagRequired("partner")
	return cmd
}

func parseLine(s string) (dto.OrderLineRequest, error) {
	part, qty, ok := strings.Cut(s, "=")
	if !ok || part == "" {
		return dto.OrderLineRequest{}, fmt.Errorf("invalid line %q, expected PART=QTY", s)
	}
	n, err := strconv.ParseInt(qty, 10, 64)
	if err != nil {
		return dto.OrderLineRequest{}, fmt.Errorf("invalid quantity in line %q: %w", s, err)
	}
	return dto.OrderLineRequest{PartNumber: part, Quantity: n}, nil
}

func newOrderListCommand(st *rootState) *cobra.Command {
	var (
		state    string
		archived bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchase orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repositories.OrderFilter{IncludeArchived: archived}
			if state != "" {
				parsed, err := entities.ParseOrderState(state)
				if err != nil {
					return err
				}
				filter.State = parsed
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			orders, err := a.purchaseOrders.ListOrders(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return st.printOrders(cmd, orders...)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Only orders in this state")
	cmd.Flags().BoolVar(&archived, "archived", false, "Include archived orders")
	return cmd
}

func newOrderStateCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "state ID STATE",
		Short: "Move a purchase order to another state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			state, err := entities.ParseOrderState(args[1])
			if err != nil {
				return err
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			order, err := a.purchaseOrders.SetState(cmd.Context(), id, state)
			if err != nil {
				return err
			}
			return st.printOrders(cmd, order)
		},
	}
}

func newOrderCancelCommand(st *rootState) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "cancel ID...",
		Short: "Cancel purchase orders with a reason",
		Long: "Cancel purchase orders with a reason. Orders already locked or cancelled\n" +
			"are skipped; the command fails when no selected order can be cancelled.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			reasonID, err := a.resolveReason(cmd, reason)
			if err != nil {
				return err
			}

			// same checks as opening the wizard
			if _, err := a.purchaseOrders.OpenCancelWizard(cmd.Context(), ids); err != nil {
				return err
			}
			action, err := a.purchaseOrders.ConfirmCancel(cmd.Context(), dto.ConfirmCancelRequest{
				ReasonID:    reasonID,
				ActiveModel: cancellation.PurchaseOrderModel,
				ActiveIDs:   ids,
			})
			if err != nil {
				return err
			}
			p, err := st.printer(cmd)
			if err != nil {
				return err
			}
			return p.Action(action)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Cancel reason ID or name")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newOrderReasonCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "set-reason ID REASON",
		Short: "Change the cancel reason recorded on a purchase order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			reasonID, err := a.resolveReason(cmd, args[1])
			if err != nil {
				return err
			}
			order, err := a.purchaseOrders.UpdateCancelReason(cmd.Context(), id, reasonID)
			if err != nil {
				return err
			}
			return st.printOrders(cmd, order)
		},
	}
}

func newOrderToggleCommand(st *rootState, use string, archive bool) *cobra.Command {
	short := "Archive locked or cancelled purchase orders"
	if !archive {
		short = "Restore archived purchase orders"
	}
	return &cobra.Command{
		Use:   use + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			orders, err := a.purchaseOrders.ListOrders(cmd.Context(), repositories.OrderFilter{IncludeArchived: true})
			if err != nil {
				return err
			}
			active := make(map[uuid.UUID]bool, len(orders))
			for _, o := range orders {
				active[o.ID] = o.Active
			}
			// toggling flips every order, so only pick the ones not yet in the wanted state
			var selected []uuid.UUID
			for _, id := range ids {
				isActive, found := active[id]
				if !found || isActive == archive {
					selected = append(selected, id)
				}
			}
			if len(selected) == 0 {
				return st.printOrders(cmd)
			}

			toggled, err := a.purchaseOrders.ToggleActive(cmd.Context(), selected)
			if err != nil {
				return err
			}
			return st.printOrders(cmd, toggled...)
		},
	}
}

func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid order id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (st *rootState) printOrders(cmd *cobra.Command, orders ...*entities.PurchaseOrder) error {
	p, err := st.printer(cmd)
	if err != nil {
		return err
	}
	return p.Orders(orders)
}
