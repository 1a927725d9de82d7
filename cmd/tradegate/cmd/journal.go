package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradegate/tradegate/journal"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal [symbol]",
	Short: "Show recorded decisions for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Journal.Type != "sqlite" {
			return fmt.Errorf("journal queries need the sqlite journal, configured type is %q", cfg.Journal.Type)
		}

		j, err := journal.NewSQLite(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.BySymbol(args[0], journalLimit)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Printf("%s  %-8s %-30s bias=%.2f rr=%.2f  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Decision, e.Reason, e.BiasScore, e.RiskReward, e.ID)
		}
		return nil
	},
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "max entries to show")
	rootCmd.AddCommand(journalCmd)
}
