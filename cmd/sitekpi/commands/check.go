package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logpilot/sitekpi/internal/health"
	"github.com/logpilot/sitekpi/internal/telemetry"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "데이터 건강도 점검 (0~100)",
	Long: `텔레메트리 전체에 대해 데이터 건강도 점수를 계산합니다.

결측 0.40 + 이상치 0.30 + 타임스탬프 간격 0.15 + 비정상값 0.15

Example:
  go run ./cmd/sitekpi check --input telemetry.csv`,
	RunE: runCheck,
}

var checkInput string

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkInput, "input", "", "telemetry CSV file (required)")
	_ = checkCmd.MarkFlagRequired("input")
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, log, err := initDeps()
	if err != nil {
		return err
	}

	ds, err := loadTelemetry(checkInput)
	if err != nil {
		return err
	}
	log.Infof("loaded %d rows, %d columns", len(ds.Rows), len(ds.Columns))

	clean := telemetry.Reconcile(ds)
	b := health.Score(health.Slice{
		Rows:    clean.Rows,
		Columns: clean.Columns,
	}, clean.MedianDelta())

	fmt.Println("=== Data Health Check ===")
	fmt.Println()
	fmt.Printf("📊 Composite:         %.1f / 100\n", b.Composite)
	fmt.Println()
	fmt.Printf("  Missingness:        %.1f (weight %.2f)\n", b.Missingness, health.WeightMissingness)
	fmt.Printf("  Outliers:           %.1f (weight %.2f)\n", b.Outliers, health.WeightOutliers)
	fmt.Printf("  Timestamp Gaps:     %.1f (weight %.2f)\n", b.TimestampGaps, health.WeightGaps)
	fmt.Printf("  Improbable Values:  %.1f (weight %.2f)\n", b.ImprobableValues, health.WeightImprobable)

	return nil
}
