package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tradegate/tradegate/config"
	"github.com/tradegate/tradegate/engine"
	"github.com/tradegate/tradegate/journal"
	"github.com/tradegate/tradegate/market"
	"github.com/tradegate/tradegate/report"
)

var (
	barsFile      string
	proposalFile  string
	balance       float64
	equity        float64
	openTrades    int
	dailyPnL      float64
	highRiskEvent bool
	noRoute       bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a trade proposal against an OHLC series",
	Long: `Evaluate runs one proposal through the full pipeline:
indicator snapshot, confidence scoring, risk plan, account risk mode,
and the final decision. The decision is printed and routed to the
configured journal and report queue.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&barsFile, "bars", "", "OHLC series CSV (time,open,high,low,close,volume)")
	evaluateCmd.Flags().StringVar(&proposalFile, "proposal", "", "trade proposal file (YAML or JSON)")
	evaluateCmd.Flags().Float64Var(&balance, "balance", 0, "account balance")
	evaluateCmd.Flags().Float64Var(&equity, "equity", 0, "account equity (defaults to balance)")
	evaluateCmd.Flags().IntVar(&openTrades, "open-trades", 0, "currently open trade count")
	evaluateCmd.Flags().Float64Var(&dailyPnL, "daily-pnl", 0, "realized daily P&L in account currency")
	evaluateCmd.Flags().BoolVar(&highRiskEvent, "high-risk-event", false, "a high-impact macro event is pending")
	evaluateCmd.Flags().BoolVar(&noRoute, "no-route", false, "skip journal and queue writes")

	_ = evaluateCmd.MarkFlagRequired("bars")
	_ = evaluateCmd.MarkFlagRequired("proposal")
	_ = evaluateCmd.MarkFlagRequired("balance")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(c *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bars, err := market.ReadCSV(barsFile)
	if err != nil {
		return err
	}

	proposal, err := readProposal(proposalFile)
	if err != nil {
		return err
	}

	plCfg, err := cfg.PipelineConfig()
	if err != nil {
		return err
	}
	pipeline, err := engine.New(plCfg)
	if err != nil {
		return err
	}

	if equity == 0 {
		equity = balance
	}
	state := market.AccountState{
		Balance:    balance,
		Equity:     equity,
		OpenTrades: openTrades,
		DailyPnL:   dailyPnL,
	}

	decision, err := pipeline.Evaluate(proposal, bars, state, highRiskEvent, time.Now().UTC())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if noRoute {
		return nil
	}
	return routeDecision(c.Context(), cfg, decision)
}

func routeDecision(ctx context.Context, cfg *config.Config, d engine.Decision) error {
	if ctx == nil {
		ctx = context.Background()
	}

	router := &report.Router{}

	var jnl journal.Journal
	var err error
	switch cfg.Journal.Type {
	case "sqlite":
		jnl, err = journal.NewSQLite(cfg.Journal.Path)
	case "csv":
		jnl, err = journal.NewCSV(cfg.Journal.Path)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if jnl != nil {
		defer jnl.Close()
		router.Journal = jnl
	}

	if cfg.Queue.Enabled {
		queueCfg := cfg.Queue.RedisQueueConfig
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			queueCfg.Addr = addr
		}
		if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
			queueCfg.Password = pw
		}
		q, err := report.NewRedisQueue(queueCfg)
		if err != nil {
			return fmt.Errorf("connect report queue: %w", err)
		}
		defer q.Close()
		router.Queue = q
	}

	res := router.Route(ctx, d)
	if !res.Ok() {
		// Routing is best-effort; the decision above already stands.
		fmt.Fprintf(os.Stderr, "warning: routing incomplete (journal: %v, queue: %v)\n",
			res.JournalErr, res.QueueErr)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

func readProposal(path string) (market.Proposal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return market.Proposal{}, fmt.Errorf("read proposal: %w", err)
	}

	var p market.Proposal
	if err := yaml.Unmarshal(data, &p); err != nil {
		if err := json.Unmarshal(data, &p); err != nil {
			return market.Proposal{}, fmt.Errorf("parse proposal (tried YAML and JSON): %w", err)
		}
	}
	return p, nil
}
