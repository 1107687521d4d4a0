package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/purchasing/pkg/domain/services/leadtime"
)

func newLeadTimeCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadtime",
		Short: "Compute vendor lead times without touching any record",
	}

	var transport, supplier int
	compute := &cobra.Command{
		Use:   "compute",
		Short: "Combine transport and supplier delays into the vendor delay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.printer(cmd)
			if err != nil {
				return err
			}
			return p.LeadTime(transport, supplier, leadtime.ComputeDelay(transport, supplier))
		},
	}
	compute.Flags().IntVar(&transport, "transport", 0, "Transport delay in days")
	compute.Flags().IntVar(&supplier, "supplier", 0, "Supplier delay in days")

	var delay, applyTransport int
	apply := &cobra.Command{
		Use:   "apply",
		Short: "Split a vendor delay into its supplier part, keeping the transport delay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.printer(cmd)
			if err != nil {
				return err
			}
			supplierDelay, err := leadtime.ApplyDelay(delay, applyTransport)
			if err != nil {
				return err
			}
			return p.LeadTime(applyTransport, supplierDelay, delay)
		},
	}
	apply.Flags().IntVar(&delay, "delay", 0, "Vendor delay in days")
	apply.Flags().IntVar(&applyTransport, "transport", 0, "Transport delay in days")
	_ = apply.MarkFlagRequired("delay")

	cmd.AddCommand(compute, apply)
	return cmd
}
