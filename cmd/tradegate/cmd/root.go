package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tradegate",
	Short: "Trade validation and risk decision pipeline",
	Long: `Tradegate decides, for each candidate trade proposal, whether it
should be executed, rejected, deferred, halted, or size-reduced.

It provides tools for:
  - Deriving technical indicators from OHLC series
  - Multi-factor confidence scoring of proposed entries
  - Risk-based position sizing with R-multiple targets
  - Account-level risk mode evaluation (loss limits, trade caps)
  - Audit journaling and report queueing of every decision`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env may carry REDIS_ADDR / REDIS_PASSWORD overrides; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}
