package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/logpilot/sitekpi/internal/report"
	"github.com/logpilot/sitekpi/internal/safety"
	"github.com/logpilot/sitekpi/internal/safetyconfig"
)

// safetyCmd represents the safety command
var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "일 단위 안전 위험 분류 실행",
	Long: `텔레메트리 일 평균으로 일 단위 안전 위험을 분류합니다.

HIGH_RISK ⟺ 진동 / 열지수 / 작업자 밀도 임계값 중 하나 이상 초과.

Example:
  go run ./cmd/sitekpi safety --input telemetry.csv
  go run ./cmd/sitekpi safety --input telemetry.csv --config safety.yaml --report
  go run ./cmd/sitekpi safety --input telemetry.csv --out risk.xlsx`,
	RunE: runSafety,
}

var (
	safetyInput      string
	safetyConfigPath string
	safetyOut        string
	safetyDate       string
	safetyReport     bool
)

func init() {
	rootCmd.AddCommand(safetyCmd)

	safetyCmd.Flags().StringVar(&safetyInput, "input", "", "telemetry CSV file (required)")
	safetyCmd.Flags().StringVar(&safetyConfigPath, "config", "", "YAML threshold artifact (default: built-in thresholds)")
	safetyCmd.Flags().StringVar(&safetyOut, "out", "", "write XLSX risk table to this path")
	safetyCmd.Flags().StringVar(&safetyDate, "date", "", "assess a single day (YYYY-MM-DD)")
	safetyCmd.Flags().BoolVar(&safetyReport, "report", false, "print alert reports for HIGH_RISK days")
	_ = safetyCmd.MarkFlagRequired("input")
}

func runSafety(cmd *cobra.Command, args []string) error {
	cfg, log, err := initDeps()
	if err != nil {
		return err
	}

	if safetyConfigPath == "" {
		safetyConfigPath = cfg.SafetyConfigPath
	}
	scfg, err := safetyconfig.LoadOrDefault(safetyConfigPath)
	if err != nil {
		return fmt.Errorf("load safety config: %w", err)
	}
	if hash, err := safetyconfig.Hash(&scfg); err == nil {
		log.WithField("config_hash", hash[:12]).Debug("safety thresholds loaded")
	}

	ds, err := loadTelemetry(safetyInput)
	if err != nil {
		return err
	}

	engine := safety.NewEngine(scfg)
	days := safety.DailyAverages(ds)

	// --date: 해당 일 하나만 평가
	if safetyDate != "" {
		target, err := time.Parse("2006-01-02", safetyDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		filtered := days[:0]
		for _, d := range days {
			if d.Date.Year() == target.Year() && d.Date.YearDay() == target.YearDay() {
				filtered = append(filtered, d)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no telemetry rows on %s", safetyDate)
		}
		days = filtered
	}

	assessments := engine.AssessAll(days)

	high := 0
	for _, a := range assessments {
		if a.IsHighRisk() {
			high++
		}
	}
	log.Infof("assessed %d days (%d high risk)", len(assessments), high)

	if safetyReport {
		for _, a := range assessments {
			if a.IsHighRisk() {
				fmt.Println(engine.AlertReport(a))
			}
		}
	}

	if safetyOut != "" {
		data, err := report.BuildRiskXLSX(assessments)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		if err := os.WriteFile(safetyOut, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("✅ Risk table written: %s (%d days)\n", safetyOut, len(assessments))
		return nil
	}

	if !safetyReport {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessments)
	}
	return nil
}
