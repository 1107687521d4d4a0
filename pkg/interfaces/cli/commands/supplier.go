package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/csv"
)

func newSupplierCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Manage vendor offers",
	}

	var (
		req   dto.CreateSupplierInfoRequest
		price string
		delay int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a vendor offer to a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.services()
			if err != nil {
				return err
			}
			if req.Price, err = decimal.NewFromString(price); err != nil {
				return err
			}
			if cmd.Flags().Changed("delay") {
				req.Delay = &delay
			}
			info, err := a.supplierInfos.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return st.printSupplierInfos(cmd, info)
		},
	}
	add.Flags().StringVar(&req.PartnerID, "partner", "", "Vendor")
	add.Flags().StringVar(&req.PartNumber, "product", "", "Part number")
	add.Flags().Int64Var(&req.MinQty, "min-qty", 0, "Minimum quantity of the price break")
	add.Flags().StringVar(&price, "price", "0", "Unit price")
	add.Flags().IntVar(&req.TransportDelay, "transport", 0, "Transport delay in days")
	add.Flags().IntVar(&req.SupplierDelay, "supplier", 0, "Supplier delay in days")
	add.Flags().IntVar(&delay, "delay", 0, "Vendor delay in days; overrides the supplier delay")
	_ = add.MarkFlagRequired("partner")
	_ = add.MarkFlagRequired("product")

	var product string
	list := &cobra.Command{
		Use:   "list",
		Short: "List vendor offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.services()
			if err != nil {
				return err
			}
			var infos []*entities.SupplierInfo
			if product != "" {
				infos, err = a.supplierInfos.ListByProduct(cmd.Context(), entities.PartNumber(product))
			} else {
				infos, err = a.supplierInfos.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return st.printSupplierInfos(cmd, infos...)
		},
	}
	list.Flags().StringVar(&product, "product", "", "Only offers for this part number")

	var transport, supplier, combined int
	setDelay := &cobra.Command{
		Use:   "set-delay ID",
		Short: "Write the delays of a vendor offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			var update dto.UpdateDelaysRequest
			if cmd.Flags().Changed("transport") {
				update.TransportDelay = &transport
			}
			if cmd.Flags().Changed("supplier") {
				update.SupplierDelay = &supplier
			}
			if cmd.Flags().Changed("delay") {
				update.Delay = &combined
			}

			a, err := st.services()
			if err != nil {
				return err
			}
			info, err := a.supplierInfos.UpdateDelays(cmd.Context(), id, update)
			if err != nil {
				return err
			}
			return st.printSupplierInfos(cmd, info)
		},
	}
	setDelay.Flags().IntVar(&transport, "transport", 0, "Transport delay in days")
	setDelay.Flags().IntVar(&supplier, "supplier", 0, "Supplier delay in days")
	setDelay.Flags().IntVar(&combined, "delay", 0, "Vendor delay in days")

	cmd.AddCommand(add, list, setDelay)
	return cmd
}

func newImportCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import vendor offers from a CSV file",
		Long: "Import vendor offers from a CSV file with the header\n" +
			"partner,product,min_qty,price,transport_delay,supplier_delay,delay\n" +
			"An empty delay column derives the delay from the other two.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := csv.NewLoader().LoadSupplierInfos(args[0])
			if err != nil {
				return err
			}
			a, err := st.services()
			if err != nil {
				return err
			}
			if err := a.supplierInfos.Import(cmd.Context(), infos); err != nil {
				return err
			}
			return st.printSupplierInfos(cmd, infos...)
		},
	}
}

func (st *rootState) printSupplierInfos(cmd *cobra.Command, infos ...*entities.SupplierInfo) error {
	p, err := st.printer(cmd)
	if err != nil {
		return err
	}
	return p.SupplierInfos(infos)
}
