package telemetry

import (
	"math"
	"sort"
	"time"
)

// =============================================================================
// Column Model
// =============================================================================

// Column identifies a numeric telemetry field.
type Column string

const (
	ColTemperature              Column = "temperature"
	ColHumidity                 Column = "humidity"
	ColVibrationLevel           Column = "vibration_level"
	ColWorkerCount              Column = "worker_count"
	ColEquipmentUtilizationRate Column = "equipment_utilization_rate"
	ColEnergyConsumption        Column = "energy_consumption"
	ColMaterialUsage            Column = "material_usage"
	ColCostDeviation            Column = "cost_deviation"
	ColTimeDeviation            Column = "time_deviation"
	ColTaskProgress             Column = "task_progress"
	ColRiskScore                Column = "risk_score"
	ColSafetyIncidents          Column = "safety_incidents"
	ColMaterialShortageAlert    Column = "material_shortage_alert"
)

// NumericColumns is the full set of numeric telemetry columns, in canonical order.
var NumericColumns = []Column{
	ColTemperature,
	ColHumidity,
	ColVibrationLevel,
	ColWorkerCount,
	ColEquipmentUtilizationRate,
	ColEnergyConsumption,
	ColMaterialUsage,
	ColCostDeviation,
	ColTimeDeviation,
	ColTaskProgress,
	ColRiskScore,
	ColSafetyIncidents,
	ColMaterialShortageAlert,
}

// IsValid checks if the column is one of the known telemetry columns.
func (c Column) IsValid() bool {
	for _, col := range NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}

// =============================================================================
// Row / Dataset
// =============================================================================

// Row is a single timestamped telemetry record.
// ⭐ SSOT: 결측 셀은 NaN으로 표현 (missing = NaN)
// 단일 타입 계약 - dict/DataFrame 같은 런타임 타입 분기 없음
type Row struct {
	Timestamp time.Time

	Temperature              float64
	Humidity                 float64
	VibrationLevel           float64
	WorkerCount              float64
	EquipmentUtilizationRate float64
	EnergyConsumption        float64
	MaterialUsage            float64
	CostDeviation            float64
	TimeDeviation            float64
	TaskProgress             float64
	RiskScore                float64
	SafetyIncidents          float64
	MaterialShortageAlert    float64
}

// NewRow creates a row with every numeric cell missing.
func NewRow(ts time.Time) Row {
	r := Row{Timestamp: ts}
	nan := math.NaN()
	r.Temperature = nan
	r.Humidity = nan
	r.VibrationLevel = nan
	r.WorkerCount = nan
	r.EquipmentUtilizationRate = nan
	r.EnergyConsumption = nan
	r.MaterialUsage = nan
	r.CostDeviation = nan
	r.TimeDeviation = nan
	r.TaskProgress = nan
	r.RiskScore = nan
	r.SafetyIncidents = nan
	r.MaterialShortageAlert = nan
	return r
}

// Value returns the cell for the given column (NaN when missing).
func (r Row) Value(c Column) float64 {
	switch c {
	case ColTemperature:
		return r.Temperature
	case ColHumidity:
		return r.Humidity
	case ColVibrationLevel:
		return r.VibrationLevel
	case ColWorkerCount:
		return r.WorkerCount
	case ColEquipmentUtilizationRate:
		return r.EquipmentUtilizationRate
	case ColEnergyConsumption:
		return r.EnergyConsumption
	case ColMaterialUsage:
		return r.MaterialUsage
	case ColCostDeviation:
		return r.CostDeviation
	case ColTimeDeviation:
		return r.TimeDeviation
	case ColTaskProgress:
		return r.TaskProgress
	case ColRiskScore:
		return r.RiskScore
	case ColSafetyIncidents:
		return r.SafetyIncidents
	case ColMaterialShortageAlert:
		return r.MaterialShortageAlert
	default:
		return math.NaN()
	}
}

// SetValue sets the cell for the given column. Unknown columns are ignored.
func (r *Row) SetValue(c Column, v float64) {
	switch c {
	case ColTemperature:
		r.Temperature = v
	case ColHumidity:
		r.Humidity = v
	case ColVibrationLevel:
		r.VibrationLevel = v
	case ColWorkerCount:
		r.WorkerCount = v
	case ColEquipmentUtilizationRate:
		r.EquipmentUtilizationRate = v
	case ColEnergyConsumption:
		r.EnergyConsumption = v
	case ColMaterialUsage:
		r.MaterialUsage = v
	case ColCostDeviation:
		r.CostDeviation = v
	case ColTimeDeviation:
		r.TimeDeviation = v
	case ColTaskProgress:
		r.TaskProgress = v
	case ColRiskScore:
		r.RiskScore = v
	case ColSafetyIncidents:
		r.SafetyIncidents = v
	case ColMaterialShortageAlert:
		r.MaterialShortageAlert = v
	}
}

// Dataset is an in-memory telemetry table.
// Columns records which optional columns the source actually provided;
// rollups and health checks that depend on an absent column are skipped.
type Dataset struct {
	Rows    []Row
	Columns []Column
}

// Has reports whether the dataset provides the given column.
func (d *Dataset) Has(c Column) bool {
	for _, col := range d.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// SortByTimestamp returns a copy of the dataset sorted by timestamp ascending.
// 원본은 수정하지 않음
func (d *Dataset) SortByTimestamp() Dataset {
	rows := make([]Row, len(d.Rows))
	copy(rows, d.Rows)
	sortRowsByTimestamp(rows)

	cols := make([]Column, len(d.Columns))
	copy(cols, d.Columns)

	return Dataset{Rows: rows, Columns: cols}
}

// MedianDelta returns the median consecutive timestamp delta of the dataset.
// 데이터셋 전체의 표본 주기 추정치 (gap 판정 기준)
// Returns 0 when fewer than 2 rows exist.
func (d *Dataset) MedianDelta() time.Duration {
	if len(d.Rows) < 2 {
		return 0
	}

	sorted := d.SortByTimestamp()
	deltas := make([]time.Duration, 0, len(sorted.Rows)-1)
	for i := 1; i < len(sorted.Rows); i++ {
		deltas = append(deltas, sorted.Rows[i].Timestamp.Sub(sorted.Rows[i-1].Timestamp))
	}

	sortDurations(deltas)
	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		return deltas[mid]
	}
	return (deltas[mid-1] + deltas[mid]) / 2
}

func sortRowsByTimestamp(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}

func sortDurations(ds []time.Duration) {
	sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
}
