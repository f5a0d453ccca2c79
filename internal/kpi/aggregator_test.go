package kpi

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logpilot/sitekpi/internal/telemetry"
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // 월요일

func rowAt(ts time.Time, set func(r *telemetry.Row)) telemetry.Row {
	r := telemetry.NewRow(ts)
	if set != nil {
		set(&r)
	}
	return r
}

func TestAggregate_InvalidFrequency(t *testing.T) {
	_, err := Aggregate(&telemetry.Dataset{}, Frequency("monthly"))
	require.Error(t, err)

	var verr telemetry.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "frequency", verr.Field)
}

func TestAggregate_EmptyDataset(t *testing.T) {
	records, err := Aggregate(&telemetry.Dataset{}, FrequencyDaily)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAggregate_EveryRowInExactlyOnePeriod(t *testing.T) {
	// 4일에 걸친 불균일 행 - RowCount 합 = 전체 행 수
	rows := []telemetry.Row{
		rowAt(monday.Add(1*time.Hour), nil),
		rowAt(monday.Add(5*time.Hour), nil),
		rowAt(monday.AddDate(0, 0, 1), nil),
		rowAt(monday.AddDate(0, 0, 3).Add(23*time.Hour), nil),
	}
	ds := &telemetry.Dataset{Rows: rows}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 4) // 월~목, 빈 수요일 포함

	total := 0
	for _, rec := range records {
		total += rec.RowCount
	}
	assert.Equal(t, len(rows), total)

	assert.Equal(t, 2, records[0].RowCount)
	assert.Equal(t, 1, records[1].RowCount)
	assert.Equal(t, 0, records[2].RowCount) // 빈 기간도 출력에 포함
	assert.Equal(t, 1, records[3].RowCount)
}

func TestAggregate_HalfOpenPeriodBoundary(t *testing.T) {
	// 자정 정각 행은 다음 기간에 속함 [start, end)
	rows := []telemetry.Row{
		rowAt(monday.Add(23*time.Hour+59*time.Minute), nil),
		rowAt(monday.AddDate(0, 0, 1), nil),
	}
	records, err := Aggregate(&telemetry.Dataset{Rows: rows}, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].RowCount)
	assert.Equal(t, 1, records[1].RowCount)
}

func TestAggregate_WeeklyStartsMonday(t *testing.T) {
	wednesday := monday.AddDate(0, 0, 2)
	records, err := Aggregate(&telemetry.Dataset{
		Rows: []telemetry.Row{rowAt(wednesday, nil)},
	}, FrequencyWeekly)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, monday, records[0].PeriodStart)
}

func TestAggregate_EmptyPeriodRollupsAreNaN(t *testing.T) {
	rows := []telemetry.Row{
		rowAt(monday, func(r *telemetry.Row) { r.TaskProgress = 10 }),
		rowAt(monday.AddDate(0, 0, 2), func(r *telemetry.Row) { r.TaskProgress = 20 }),
	}
	ds := &telemetry.Dataset{Rows: rows, Columns: []telemetry.Column{telemetry.ColTaskProgress}}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 3)

	empty := records[1]
	assert.Equal(t, 0, empty.RowCount)
	assert.True(t, math.IsNaN(empty.TaskProgressMean))
	assert.True(t, math.IsNaN(empty.ProgressVelocity))
	assert.True(t, math.IsNaN(empty.DataHealthIndex))
}

func TestAggregate_ProgressVelocity(t *testing.T) {
	// 기간 내 첫/마지막 비결측 진행률의 차
	rows := []telemetry.Row{
		rowAt(monday.Add(1*time.Hour), func(r *telemetry.Row) { r.TaskProgress = 10 }),
		rowAt(monday.Add(5*time.Hour), func(r *telemetry.Row) { r.TaskProgress = math.NaN() }),
		rowAt(monday.Add(9*time.Hour), func(r *telemetry.Row) { r.TaskProgress = 25 }),
	}
	ds := &telemetry.Dataset{Rows: rows, Columns: []telemetry.Column{telemetry.ColTaskProgress}}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 10.0, records[0].TaskProgressFirst)
	assert.Equal(t, 25.0, records[0].TaskProgressLast)
	assert.InDelta(t, 15.0, records[0].ProgressVelocity, 1e-9)
}

func TestAggregate_EnergyIntensityPerWorker(t *testing.T) {
	// 행 단위 energy/(worker+1) 평균 - worker=0이어도 정의됨
	rows := []telemetry.Row{
		rowAt(monday.Add(1*time.Hour), func(r *telemetry.Row) {
			r.EnergyConsumption = 100
			r.WorkerCount = 0
		}),
		rowAt(monday.Add(2*time.Hour), func(r *telemetry.Row) {
			r.EnergyConsumption = 300
			r.WorkerCount = 2
		}),
	}
	ds := &telemetry.Dataset{
		Rows:    rows,
		Columns: []telemetry.Column{telemetry.ColEnergyConsumption, telemetry.ColWorkerCount},
	}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// (100/1 + 300/3) / 2 = 100
	assert.InDelta(t, 100.0, records[0].EnergyIntensity, 1e-9)
}

func TestAggregate_SafetyIncidentRollups(t *testing.T) {
	rows := []telemetry.Row{
		rowAt(monday.Add(1*time.Hour), func(r *telemetry.Row) { r.SafetyIncidents = 1 }),
		rowAt(monday.Add(2*time.Hour), func(r *telemetry.Row) { r.SafetyIncidents = 0 }),
		rowAt(monday.Add(3*time.Hour), func(r *telemetry.Row) { r.SafetyIncidents = 2 }),
	}
	ds := &telemetry.Dataset{Rows: rows, Columns: []telemetry.Column{telemetry.ColSafetyIncidents}}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.InDelta(t, 3.0, records[0].SafetyIncidentCount, 1e-9)
	assert.InDelta(t, 1.0, records[0].SafetyIncidentRate, 1e-9)
}

func TestAggregate_AbsentColumnRollupsStayNaN(t *testing.T) {
	rows := []telemetry.Row{rowAt(monday, func(r *telemetry.Row) { r.TaskProgress = 50 })}
	ds := &telemetry.Dataset{Rows: rows, Columns: []telemetry.Column{telemetry.ColTaskProgress}}

	records, err := Aggregate(ds, FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// cost_deviation 컬럼이 없으므로 롤업 건너뜀
	assert.True(t, math.IsNaN(records[0].CostDeviationMean))
	assert.True(t, math.IsNaN(records[0].CostDeviationMax))
}

// 14일 일 단위 데이터 → 주 단위 집계 end-to-end
func TestAggregate_TwoFullWeeks(t *testing.T) {
	cols := []telemetry.Column{
		telemetry.ColCostDeviation,
		telemetry.ColTaskProgress,
		telemetry.ColEquipmentUtilizationRate,
	}

	var rows []telemetry.Row
	for i := 0; i < 14; i++ {
		i := i
		rows = append(rows, rowAt(monday.AddDate(0, 0, i), func(r *telemetry.Row) {
			r.CostDeviation = float64(i)
			r.TaskProgress = float64(i) * 5
			r.EquipmentUtilizationRate = 60 + float64(i)
		}))
	}
	ds := &telemetry.Dataset{Rows: rows, Columns: cols}

	records, err := Aggregate(ds, FrequencyWeekly)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first, second := records[0], records[1]
	assert.Equal(t, monday, first.PeriodStart)
	assert.Equal(t, monday.AddDate(0, 0, 7), second.PeriodStart)
	assert.Equal(t, 7, first.RowCount)
	assert.Equal(t, 7, second.RowCount)

	// 1주차 cost_deviation: 0..6 → 평균 3, 최대 6
	assert.InDelta(t, 3.0, first.CostDeviationMean, 1e-9)
	assert.InDelta(t, 6.0, first.CostDeviationMax, 1e-9)

	// 진행률: 1주차 0→30, 2주차 35→65
	assert.InDelta(t, 30.0, first.ProgressVelocity, 1e-9)
	assert.InDelta(t, 30.0, second.ProgressVelocity, 1e-9)

	// 결측/이상치/갭/비정상값 전혀 없음 → 건강도 만점
	assert.Equal(t, 100.0, first.DataHealthIndex)
	assert.Equal(t, 100.0, second.DataHealthIndex)
}

func TestPeriodStart(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		freq Frequency
		want time.Time
	}{
		{"daily: 자정 절단", monday.Add(15 * time.Hour), FrequencyDaily, monday},
		{"weekly: 월요일은 그대로", monday, FrequencyWeekly, monday},
		{"weekly: 일요일은 직전 월요일로", monday.AddDate(0, 0, 6).Add(3 * time.Hour), FrequencyWeekly, monday},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, periodStart(tc.ts, tc.freq))
		})
	}
}
