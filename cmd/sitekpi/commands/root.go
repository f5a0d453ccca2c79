package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logpilot/sitekpi/pkg/config"
	"github.com/logpilot/sitekpi/pkg/logger"
)

var (
	// Global flags
	envName string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitekpi",
	Short: "SiteKPI - 건설 현장 텔레메트리 KPI 파이프라인",
	Long: `SiteKPI Unified CLI

건설 현장 텔레메트리 코어: 정제 → 건강도 → 기간 집계 → KPI 파생 → 안전 규칙.

Usage:
  go run ./cmd/sitekpi [command]

Examples:
  go run ./cmd/sitekpi kpis --input telemetry.csv --freq weekly
  go run ./cmd/sitekpi safety --input telemetry.csv --report
  go run ./cmd/sitekpi check --input telemetry.csv`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initDeps loads configuration and builds the logger.
// ⭐ SSOT: 모든 서브커맨드는 이 함수로 의존성 초기화
func initDeps() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if envName != "" {
		cfg.Env = envName
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	return cfg, log, nil
}
