package cmd

import (
	"github.com/spf13/cobra"

	"github.com/glbter/capstone/config"
)

func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "capstone",
		Short: "Stock dashboard, blog and book notes web apps",
		Long: `capstone bundles three small server-rendered web apps: a stock dashboard
backed by the Financial Modeling Prep API, an in-memory blog and a personal
book notes library stored in SQLite.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(newDashboardCmd(cfg))
	rootCmd.AddCommand(newBlogCmd(cfg))
	rootCmd.AddCommand(newBooksCmd(cfg))
	rootCmd.AddCommand(newBookEventsCmd(cfg))

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
