package cmd

import (
	"fmt"
	"os"

	"storefront/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront Sync Service",
	Long: `Storefront keeps a local product catalog, inventory audit trail, and
order book synchronized with an external point-of-sale system via signed
webhooks, and serves storefront reads from a denormalized catalog cache.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI errors go through the console logger so operators get the
		// same structured output as the server.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
