package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logpilot/sitekpi/internal/kpi"
	"github.com/logpilot/sitekpi/internal/report"
	"github.com/logpilot/sitekpi/internal/telemetry"
)

// kpisCmd represents the kpis command
var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "텔레메트리 CSV → 기간별 KPI 테이블 계산",
	Long: `텔레메트리 CSV를 정제하고 기간별 KPI 테이블을 계산합니다.

파이프라인: reconcile → aggregate → derive

Example:
  go run ./cmd/sitekpi kpis --input telemetry.csv --freq weekly
  go run ./cmd/sitekpi kpis --input telemetry.csv --freq daily --out kpis.xlsx`,
	RunE: runKPIs,
}

var (
	kpisInput string
	kpisFreq  string
	kpisOut   string
)

func init() {
	rootCmd.AddCommand(kpisCmd)

	kpisCmd.Flags().StringVar(&kpisInput, "input", "", "telemetry CSV file (required)")
	kpisCmd.Flags().StringVar(&kpisFreq, "freq", "", "aggregation frequency: daily, weekly (default from config)")
	kpisCmd.Flags().StringVar(&kpisOut, "out", "", "write XLSX report to this path (default: JSON to stdout)")
	_ = kpisCmd.MarkFlagRequired("input")
}

func runKPIs(cmd *cobra.Command, args []string) error {
	cfg, log, err := initDeps()
	if err != nil {
		return err
	}

	if kpisFreq == "" {
		kpisFreq = cfg.DefaultFrequency
	}
	freq, err := kpi.ParseFrequency(kpisFreq)
	if err != nil {
		return err
	}

	ds, err := loadTelemetry(kpisInput)
	if err != nil {
		return err
	}
	log.Infof("loaded %d rows, %d columns", len(ds.Rows), len(ds.Columns))

	// 정제 → 집계 → 파생
	clean := telemetry.Reconcile(ds)
	records, err := kpi.Aggregate(&clean, freq)
	if err != nil {
		return err
	}
	kpi.Derive(records)
	log.Infof("aggregated %d %s periods", len(records), freq)

	if kpisOut != "" {
		data, err := report.BuildKPIXLSX(records, freq)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		if err := os.WriteFile(kpisOut, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("✅ KPI report written: %s (%d periods)\n", kpisOut, len(records))
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// loadTelemetry opens and parses a telemetry CSV file.
func loadTelemetry(path string) (*telemetry.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ds, err := telemetry.LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return ds, nil
}
