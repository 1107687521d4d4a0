package commands

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/interfaces/rest"
	"github.com/vsinha/purchasing/pkg/metrics"
)

func newServeCommand(st *rootState) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the purchasing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				st.cfg.Service.Address = address
			}
			a, err := st.services()
			if err != nil {
				return err
			}

			st.log.Info("starting API service", zap.String("db_type", st.cfg.Database.Type))
			defer st.log.Info("API service stopped")

			listener, err := net.Listen("tcp", st.cfg.Service.Address)
			if err != nil {
				return err
			}

			mw := metrics.NewMiddleware()
			mw.MustRegister()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			server := rest.New(st.cfg, rest.Services{
				SupplierInfos:  a.supplierInfos,
				PurchaseOrders: a.purchaseOrders,
				CancelReasons:  a.cancelReasons,
			}, st.log, mw)
			return server.Run(ctx, listener)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Listen address (default from PURCHASING_ADDRESS)")
	return cmd
}
