package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/score"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var (
	flagScoreAddr       string
	flagScoreLedger     string
	flagScoreAcceptZero bool
)

var scoreServerCmd = &cobra.Command{
	Use:   "score-server",
	Short: "Run the HTTP scoring endpoint",
	Long: `Serve POST /score, which records a completion in the ledger with the
tags app, nickname, moves and time and returns {"txId": "..."}.
GET /scores lists recent records and GET /healthz reports liveness.

Settings come from the environment and may be overridden by flags:
  SCORE_ADDR              listen address (default :8888)
  SCORE_DB                ledger database (default ~/.jigsaw/ledger.db)
  SCORE_APP               app tag value (default irys-jigsaw)
  SCORE_ACCEPT_ZERO       accept moves or time of 0 (default false)
  SCORE_MAX_BODY          request body limit in bytes
  SCORE_READ_TIMEOUT, SCORE_WRITE_TIMEOUT, SCORE_SHUTDOWN_TIMEOUT

Examples:
  jigsaw score-server
  SCORE_ADDR=:9000 jigsaw score-server
  jigsaw score-server --addr 127.0.0.1:8888 --ledger ./ledger.db`,
	Run: runScoreServer,
}

func init() {
	scoreServerCmd.Flags().StringVar(&flagScoreAddr, "addr", "", "Listen address (overrides SCORE_ADDR)")
	scoreServerCmd.Flags().StringVar(&flagScoreLedger, "ledger", "", "Ledger database path (overrides SCORE_DB)")
	scoreServerCmd.Flags().BoolVar(&flagScoreAcceptZero, "accept-zero", false, "Accept moves or time of 0")
}

func runScoreServer(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "score",
	})

	cfg, err := config.LoadScoreServer()
	if err != nil {
		logger.Fatal("invalid environment", "error", err)
	}
	if flagScoreAddr != "" {
		cfg.Addr = flagScoreAddr
	}
	if flagScoreLedger != "" {
		cfg.DBPath = flagScoreLedger
	}
	if cmd.Flags().Changed("accept-zero") {
		cfg.AcceptZero = flagScoreAcceptZero
	}

	ledger, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("could not open ledger", "path", cfg.DBPath, "error", err)
	}
	defer ledger.Close()

	server := score.NewServer(cfg, ledger, logger)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		ledger.Close()
		os.Exit(1)
	}
}
