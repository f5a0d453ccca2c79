package health

import (
	"math"
	"sort"
	"time"

	"github.com/logpilot/sitekpi/internal/telemetry"
)

// =============================================================================
// Data Health Scorer - 기간 단위 데이터 품질 점수
// =============================================================================

// Sub-score weights. 합계 = 1.0
const (
	WeightMissingness = 0.40
	WeightOutliers    = 0.30
	WeightGaps        = 0.15
	WeightImprobable  = 0.15
)

// IQR fence multiplier: [Q1 - 3·IQR, Q3 + 3·IQR] 밖이면 outlier.
// Z-score 방식이 아닌 IQR 방식을 canonical로 사용.
const iqrFence = 3.0

// Breakdown holds the four sub-scores and the weighted composite.
// ⭐ SSOT: 모든 점수는 0~100 스케일 (완벽한 데이터 = 정확히 100)
type Breakdown struct {
	Missingness      float64 `json:"missingness"`       // 결측 셀 비율 기반
	Outliers         float64 `json:"outliers"`          // IQR 이상치 비율 기반
	TimestampGaps    float64 `json:"timestamp_gaps"`    // 표본 주기 갭 기반
	ImprobableValues float64 `json:"improbable_values"` // 물리적 불가능 값 기반
	Composite        float64 `json:"composite"`         // 가중 평균
}

// Slice is the per-period input to the scorer: the period's rows, the
// column set of the source dataset, and the period bounds.
// PeriodStart/PeriodEnd가 zero면 경계 갭은 평가하지 않음 (데이터셋 전체 점수용).
type Slice struct {
	Rows        []telemetry.Row
	Columns     []telemetry.Column
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Score computes the composite data health score for a slice.
// ref: 데이터셋 전체의 중앙값 표본 주기. 기간 내부 주기만으로는 행이 1개뿐인
// 기간이 만점이 되므로, 전체 cadence를 기준으로 경계 갭까지 평가한다.
// Empty slice: 평가 불가 - 모든 점수 NaN (집계기에서 0으로 치환).
func Score(s Slice, ref time.Duration) Breakdown {
	if len(s.Rows) == 0 {
		nan := math.NaN()
		return Breakdown{
			Missingness:      nan,
			Outliers:         nan,
			TimestampGaps:    nan,
			ImprobableValues: nan,
			Composite:        nan,
		}
	}

	b := Breakdown{
		Missingness:      missingnessScore(s),
		Outliers:         outlierScore(s),
		TimestampGaps:    gapScore(s, ref),
		ImprobableValues: improbableScore(s),
	}
	b.Composite = WeightMissingness*b.Missingness +
		WeightOutliers*b.Outliers +
		WeightGaps*b.TimestampGaps +
		WeightImprobable*b.ImprobableValues
	return b
}

// missingnessScore = (1 - 결측셀/전체셀) × 100
func missingnessScore(s Slice) float64 {
	totalCells := len(s.Rows) * len(s.Columns)
	if totalCells == 0 {
		return 100
	}

	missing := 0
	for _, row := range s.Rows {
		for _, col := range s.Columns {
			if math.IsNaN(row.Value(col)) {
				missing++
			}
		}
	}

	return (1 - float64(missing)/float64(totalCells)) * 100
}

// outlierScore = (1 - 컬럼별 outlier 비율 평균) × 100
// 분산이 0이거나 전부 결측인 컬럼은 평균에서 제외 (0%도 100%도 아님).
func outlierScore(s Slice) float64 {
	var ratios []float64

	for _, col := range s.Columns {
		values := make([]float64, 0, len(s.Rows))
		for _, row := range s.Rows {
			values = append(values, row.Value(col))
		}

		q1 := Quantile(values, 0.25)
		q3 := Quantile(values, 0.75)
		if math.IsNaN(q1) || math.IsNaN(q3) {
			continue // all-missing column
		}

		iqr := q3 - q1
		if iqr == 0 {
			continue // zero variance column
		}

		lower := q1 - iqrFence*iqr
		upper := q3 + iqrFence*iqr

		outliers := 0
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			if v < lower || v > upper {
				outliers++
			}
		}
		ratios = append(ratios, float64(outliers)/float64(len(s.Rows)))
	}

	if len(ratios) == 0 {
		return 100 // 평가 가능한 컬럼 없음
	}

	return (1 - Mean(ratios)) * 100
}

// gapScore = (1 - large gap 비율) × 100
// large gap: 연속 타임스탬프 간격 > 2 × 기준 주기.
// 기준 주기는 데이터셋 전체 중앙값 (ref), 없으면 slice 내부 중앙값.
// 기간 경계가 주어지면 [기간시작→첫 행], [마지막 행→기간끝] 간격도 평가.
func gapScore(s Slice, ref time.Duration) float64 {
	rows := make([]telemetry.Row, len(s.Rows))
	copy(rows, s.Rows)
	sortByTimestamp(rows)

	internal := make([]time.Duration, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		internal = append(internal, rows[i].Timestamp.Sub(rows[i-1].Timestamp))
	}

	if ref <= 0 {
		ref = medianDuration(internal)
	}
	if ref <= 0 {
		return 100 // 기준 주기를 알 수 없음 - 평가 불가, OK로 간주
	}

	deltas := internal
	if !s.PeriodStart.IsZero() && !s.PeriodEnd.IsZero() {
		deltas = append(deltas,
			rows[0].Timestamp.Sub(s.PeriodStart),
			s.PeriodEnd.Sub(rows[len(rows)-1].Timestamp),
		)
	}
	if len(deltas) == 0 {
		return 100 // 행 1개, 경계 없음 - 평가 불가
	}

	largeGaps := 0
	for _, d := range deltas {
		if d > 2*ref {
			largeGaps++
		}
	}

	return (1 - float64(largeGaps)/float64(len(deltas))) * 100
}

// improbableScore = (1 - 위반 행 비율) × 100
// 각 검사는 해당 컬럼이 존재할 때만 적용. NaN 셀은 위반 아님 (결측으로 별도 집계).
func improbableScore(s Slice) float64 {
	type check struct {
		col      telemetry.Column
		violates func(v float64) bool
	}

	checks := []check{
		{telemetry.ColTaskProgress, func(v float64) bool { return v < 0 || v > 100 }},
		{telemetry.ColWorkerCount, func(v float64) bool { return v < 0 }},
		{telemetry.ColEnergyConsumption, func(v float64) bool { return v < 0 }},
		{telemetry.ColEquipmentUtilizationRate, func(v float64) bool { return v < 0 || v > 100 }},
		{telemetry.ColRiskScore, func(v float64) bool { return v < 0 || v > 100 }},
	}

	applicable := make([]check, 0, len(checks))
	for _, c := range checks {
		if hasColumn(s.Columns, c.col) {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) == 0 {
		return 100
	}

	violating := 0
	for _, row := range s.Rows {
		for _, c := range applicable {
			v := row.Value(c.col)
			if !math.IsNaN(v) && c.violates(v) {
				violating++
				break // 행 단위로 1회만 집계
			}
		}
	}

	return (1 - float64(violating)/float64(len(s.Rows))) * 100
}

func hasColumn(cols []telemetry.Column, c telemetry.Column) bool {
	for _, col := range cols {
		if col == c {
			return true
		}
	}
	return false
}

func sortByTimestamp(rows []telemetry.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}

func medianDuration(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
