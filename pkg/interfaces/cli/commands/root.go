// Package commands implements the purchasing command line
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/config"
	"github.com/vsinha/purchasing/pkg/interfaces/cli/output"
	"github.com/vsinha/purchasing/pkg/log"
)

// GlobalOptions are the flags shared by every command. Flags that are set
// override the environment configuration.
type GlobalOptions struct {
	Format   string
	DBType   string
	DBName   string
	LogLevel string
}

type rootState struct {
	opts GlobalOptions
	cfg  *config.Config
	log  *zap.Logger
	app  *app
}

// Execute runs the command line with args, writing results to out. The record
// store opened by the command is closed before returning.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	st := &rootState{}
	defer func() { _ = st.close() }()

	root := newRootCommand(st)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

// newRootCommand builds the purchasing command tree
func newRootCommand(st *rootState) *cobra.Command {
	st.opts = GlobalOptions{Format: output.FormatText}

	root := &cobra.Command{
		Use:           "purchasing",
		Short:         "Purchase order cancellation, archiving and vendor lead times",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init()
		},
	}

	fs := root.PersistentFlags()
	fs.StringVarP(&st.opts.Format, "format", "f", st.opts.Format, "Output format: text, json")
	fs.StringVar(&st.opts.DBType, "db-type", "", "Record store: memory, sqlite (default from PURCHASING_DB_TYPE)")
	fs.StringVar(&st.opts.DBName, "db", "", "SQLite database file (default from PURCHASING_DB_NAME)")
	fs.StringVar(&st.opts.LogLevel, "log-level", "", "Log level (default from PURCHASING_LOG_LEVEL)")

	root.AddCommand(
		newLeadTimeCommand(st),
		newSupplierCommand(st),
		newImportCommand(st),
		newOrderCommand(st),
		newReasonCommand(st),
		newServeCommand(st),
	)
	return root
}

func (st *rootState) init() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if st.opts.DBType != "" {
		cfg.Database.Type = st.opts.DBType
	}
	if st.opts.DBName != "" {
		cfg.Database.Name = st.opts.DBName
	}
	if st.opts.LogLevel != "" {
		cfg.Service.LogLevel = st.opts.LogLevel
	}
	st.cfg = cfg
	st.log = log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	st.log.Debug("configuration loaded", zap.Stringer("config", cfg))
	return nil
}

// services opens the record store on first use
func (st *rootState) services() (*app, error) {
	if st.app != nil {
		return st.app, nil
	}
	a, err := newApp(st.cfg, st.log)
	if err != nil {
		return nil, err
	}
	st.app = a
	return a, nil
}

func (st *rootState) printer(cmd *cobra.Command) (*output.Printer, error) {
	return output.NewPrinter(cmd.OutOrStdout(), st.opts.Format)
}

func (st *rootState) close() error {
	if st.log != nil {
		defer func() { _ = st.log.Sync() }()
	}
	if st.app == nil {
		return nil
	}
	err := st.app.Close()
	st.app = nil
	return err
}
