package kpi

import (
	"math"
	"time"

	"github.com/logpilot/sitekpi/internal/health"
	"github.com/logpilot/sitekpi/internal/telemetry"
)

// =============================================================================
// Period Aggregator - 고정폭 기간 롤업
// =============================================================================

// Aggregate resamples a reconciled telemetry table into fixed-width
// periods and computes the per-period rollups plus the data health index.
// 기간 규약:
// - daily: 자정 기준 [00:00, 다음날 00:00)
// - weekly: 월요일 시작 달력 주 [월 00:00, 다음 월 00:00)
// 첫 행과 마지막 행 사이의 모든 기간이 출력에 포함된다 - 행이 없는
// 기간도 제거하지 않음 (롤업 NaN, health NaN; Derive에서 0으로 치환).
func Aggregate(ds *telemetry.Dataset, freq Frequency) ([]Record, error) {
	if !freq.IsValid() {
		return nil, telemetry.ValidationError{Field: "frequency", Message: "must be daily or weekly"}
	}

	if len(ds.Rows) == 0 {
		return []Record{}, nil
	}

	sorted := ds.SortByTimestamp()
	ref := sorted.MedianDelta() // 데이터셋 전체 cadence (gap 판정 기준)

	first := sorted.Rows[0].Timestamp
	last := sorted.Rows[len(sorted.Rows)-1].Timestamp

	var records []Record
	idx := 0

	for start := periodStart(first, freq); !start.After(last); start = nextPeriod(start, freq) {
		end := nextPeriod(start, freq)

		// 정렬된 행에서 [start, end) 구간을 한 번만 소비
		// 각 행은 정확히 하나의 기간에 속함
		lo := idx
		for idx < len(sorted.Rows) && sorted.Rows[idx].Timestamp.Before(end) {
			idx++
		}
		slice := sorted.Rows[lo:idx]

		rec := aggregatePeriod(start, end, slice, sorted.Columns, ref)
		records = append(records, rec)
	}

	return records, nil
}

// aggregatePeriod computes all rollups for a single period slice.
func aggregatePeriod(start, end time.Time, rows []telemetry.Row, cols []telemetry.Column, ref time.Duration) Record {
	rec := emptyRecord(start, len(rows))
	if len(rows) == 0 {
		return rec // 모든 롤업 NaN 유지
	}

	has := func(c telemetry.Column) bool {
		for _, col := range cols {
			if col == c {
				return true
			}
		}
		return false
	}

	if has(telemetry.ColCostDeviation) {
		rec.CostDeviationMean = colMean(rows, telemetry.ColCostDeviation)
		rec.CostDeviationMax = colMax(rows, telemetry.ColCostDeviation)
	}
	if has(telemetry.ColTimeDeviation) {
		rec.TimeDeviationMean = colMean(rows, telemetry.ColTimeDeviation)
		rec.TimeDeviationMax = colMax(rows, telemetry.ColTimeDeviation)
	}
	if has(telemetry.ColEquipmentUtilizationRate) {
		rec.EquipmentUtilizationMean = colMean(rows, telemetry.ColEquipmentUtilizationRate)
		rec.EquipmentUtilizationMax = colMax(rows, telemetry.ColEquipmentUtilizationRate)
	}

	// Energy intensity: 행 단위 energy/(worker+1)의 평균
	// +1은 worker_count=0 구간의 0 나눗셈 방지 - 소수 인원 구간에서
	// 분모를 유의미하게 바꾸는 근사치이며 정확한 값이 아님.
	if has(telemetry.ColEnergyConsumption) && has(telemetry.ColWorkerCount) {
		perWorker := make([]float64, 0, len(rows))
		for _, row := range rows {
			e := row.Value(telemetry.ColEnergyConsumption)
			w := row.Value(telemetry.ColWorkerCount)
			if math.IsNaN(e) || math.IsNaN(w) {
				continue
			}
			perWorker = append(perWorker, e/(w+1))
		}
		rec.EnergyIntensity = health.Mean(perWorker)
	}

	if has(telemetry.ColWorkerCount) {
		rec.WorkerIntensity = colMean(rows, telemetry.ColWorkerCount)
	}
	if has(telemetry.ColSafetyIncidents) {
		rec.SafetyIncidentCount = colSum(rows, telemetry.ColSafetyIncidents)
		rec.SafetyIncidentRate = colMean(rows, telemetry.ColSafetyIncidents)
	}
	if has(telemetry.ColTaskProgress) {
		rec.TaskProgressFirst = colFirst(rows, telemetry.ColTaskProgress)
		rec.TaskProgressLast = colLast(rows, telemetry.ColTaskProgress)
		rec.TaskProgressMean = colMean(rows, telemetry.ColTaskProgress)
		rec.ProgressVelocity = rec.TaskProgressLast - rec.TaskProgressFirst
	}
	if has(telemetry.ColMaterialUsage) {
		rec.MaterialUsageMean = colMean(rows, telemetry.ColMaterialUsage)
	}
	if has(telemetry.ColRiskScore) {
		rec.RiskScoreMean = colMean(rows, telemetry.ColRiskScore)
		rec.RiskScoreMax = colMax(rows, telemetry.ColRiskScore)
	}

	// 기간별 데이터 품질 점수 - 이 기간의 행만 사용, 기간 경계 누출 없음
	breakdown := health.Score(health.Slice{
		Rows:        rows,
		Columns:     cols,
		PeriodStart: start,
		PeriodEnd:   end,
	}, ref)
	rec.DataHealthIndex = breakdown.Composite

	return rec
}

// emptyRecord returns a record with every metric set to NaN.
func emptyRecord(start time.Time, rowCount int) Record {
	nan := math.NaN()
	return Record{
		PeriodStart: start,
		RowCount:    rowCount,

		CostDeviationMean:        nan,
		CostDeviationMax:         nan,
		TimeDeviationMean:        nan,
		TimeDeviationMax:         nan,
		EquipmentUtilizationMean: nan,
		EquipmentUtilizationMax:  nan,
		EnergyIntensity:          nan,
		WorkerIntensity:          nan,
		SafetyIncidentCount:      nan,
		SafetyIncidentRate:       nan,
		TaskProgressFirst:        nan,
		TaskProgressLast:         nan,
		TaskProgressMean:         nan,
		MaterialUsageMean:        nan,
		RiskScoreMean:            nan,
		RiskScoreMax:             nan,

		ProgressVelocity: nan,
		DataHealthIndex:  nan,

		ResourceUtilization: nan,
		CostEfficiency:      nan,
		ScheduleAdherence:   nan,
		ProgressPct:         nan,
	}
}

// periodStart truncates a timestamp to its containing period start.
func periodStart(ts time.Time, freq Frequency) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	if freq == FrequencyDaily {
		return day
	}

	// weekly: 월요일로 후퇴 (ISO 주)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

func nextPeriod(start time.Time, freq Frequency) time.Time {
	if freq == FrequencyDaily {
		return start.AddDate(0, 0, 1)
	}
	return start.AddDate(0, 0, 7)
}

// =============================================================================
// Column rollup helpers (NaN 셀 제외)
// =============================================================================

func colValues(rows []telemetry.Row, c telemetry.Column) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Value(c))
	}
	return values
}

func colMean(rows []telemetry.Row, c telemetry.Column) float64 {
	return health.Mean(colValues(rows, c))
}

func colMax(rows []telemetry.Row, c telemetry.Column) float64 {
	max := math.NaN()
	for _, row := range rows {
		v := row.Value(c)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

func colSum(rows []telemetry.Row, c telemetry.Column) float64 {
	sum := math.NaN()
	for _, row := range rows {
		v := row.Value(c)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(sum) {
			sum = 0
		}
		sum += v
	}
	return sum
}

// colFirst returns the first non-missing value in timestamp order.
func colFirst(rows []telemetry.Row, c telemetry.Column) float64 {
	for _, row := range rows {
		if v := row.Value(c); !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

// colLast returns the last non-missing value in timestamp order.
func colLast(rows []telemetry.Row, c telemetry.Column) float64 {
	for i := len(rows) - 1; i >= 0; i-- {
		if v := rows[i].Value(c); !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}
