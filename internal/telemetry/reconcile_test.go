package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tsAt(hour int) time.Time {
	return time.Date(2025, 3, 3, hour, 0, 0, 0, time.UTC)
}

func TestReconcile_EnergyUnitCorrection(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"kWh로 잘못 기록된 값은 1000배 보정", 0.8, 800},
		{"임계값 미만 경계", 49.9, 49900},
		{"임계값 이상은 그대로", 50.0, 50.0},
		{"정상 Wh 값", 120, 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := NewRow(tsAt(0))
			row.EnergyConsumption = tc.input
			ds := &Dataset{Rows: []Row{row}, Columns: []Column{ColEnergyConsumption}}

			out := Reconcile(ds)
			// ×1000 보정은 이진 부동소수 오차가 생길 수 있어 InDelta 사용
			assert.InDelta(t, tc.want, out.Rows[0].EnergyConsumption, 1e-9)
		})
	}
}

func TestReconcile_ClampsPhysicalRanges(t *testing.T) {
	r1 := NewRow(tsAt(0))
	r1.Temperature = 150
	r1.Humidity = -5

	r2 := NewRow(tsAt(1))
	r2.Temperature = -99
	r2.Humidity = 130

	ds := &Dataset{
		Rows:    []Row{r1, r2},
		Columns: []Column{ColTemperature, ColHumidity},
	}

	out := Reconcile(ds)
	assert.Equal(t, 80.0, out.Rows[0].Temperature)
	assert.Equal(t, 0.0, out.Rows[0].Humidity)
	assert.Equal(t, -30.0, out.Rows[1].Temperature)
	assert.Equal(t, 100.0, out.Rows[1].Humidity)
}

func TestReconcile_NaNPassesThrough(t *testing.T) {
	row := NewRow(tsAt(0))
	ds := &Dataset{
		Rows:    []Row{row},
		Columns: []Column{ColTemperature, ColHumidity, ColEnergyConsumption},
	}

	out := Reconcile(ds)
	assert.True(t, math.IsNaN(out.Rows[0].Temperature))
	assert.True(t, math.IsNaN(out.Rows[0].Humidity))
	assert.True(t, math.IsNaN(out.Rows[0].EnergyConsumption))
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	row := NewRow(tsAt(0))
	row.EnergyConsumption = 0.8
	row.Temperature = 150
	ds := &Dataset{
		Rows:    []Row{row},
		Columns: []Column{ColEnergyConsumption, ColTemperature},
	}

	_ = Reconcile(ds)

	// 원본은 그대로
	assert.Equal(t, 0.8, ds.Rows[0].EnergyConsumption)
	assert.Equal(t, 150.0, ds.Rows[0].Temperature)
}

func TestReconcile_SkipsAbsentColumns(t *testing.T) {
	row := NewRow(tsAt(0))
	row.EnergyConsumption = 0.8 // 컬럼 목록에 없으므로 건드리지 않음
	ds := &Dataset{Rows: []Row{row}, Columns: []Column{ColTemperature}}

	out := Reconcile(ds)
	assert.Equal(t, 0.8, out.Rows[0].EnergyConsumption)
}

func TestReconcile_SortsByTimestamp(t *testing.T) {
	r1 := NewRow(tsAt(5))
	r2 := NewRow(tsAt(1))
	r3 := NewRow(tsAt(3))
	ds := &Dataset{Rows: []Row{r1, r2, r3}, Columns: nil}

	out := Reconcile(ds)
	assert.Equal(t, tsAt(1), out.Rows[0].Timestamp)
	assert.Equal(t, tsAt(3), out.Rows[1].Timestamp)
	assert.Equal(t, tsAt(5), out.Rows[2].Timestamp)
}

func TestMedianDelta(t *testing.T) {
	ds := &Dataset{Rows: []Row{
		NewRow(tsAt(0)), NewRow(tsAt(1)), NewRow(tsAt(2)), NewRow(tsAt(6)),
	}}

	// deltas: 1h, 1h, 4h → median 1h
	assert.Equal(t, time.Hour, ds.MedianDelta())
}

func TestMedianDelta_TooFewRows(t *testing.T) {
	ds := &Dataset{Rows: []Row{NewRow(tsAt(0))}}
	assert.Equal(t, time.Duration(0), ds.MedianDelta())
}
