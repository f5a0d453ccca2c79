package kpi

import (
	"fmt"
	"time"
)

// =============================================================================
// Aggregation Frequency
// =============================================================================

// Frequency is the resampling width for period rollups.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid checks if the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// ParseFrequency converts a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency %q (use: daily, weekly)", s)
	}
	return f, nil
}

// =============================================================================
// KPI Record
// =============================================================================

// Record is one row of the output KPI table: the period start, all
// rollup aggregates, the data health index, and all derived KPIs.
// ⭐ SSOT: 집계기 생성 → 파생 KPI 엔진이 제자리 확장 → 이후 불변
// 집계 단계에서 계산 불가능한 값은 NaN, Derive의 fill 단계에서 0으로 치환.
type Record struct {
	PeriodStart time.Time `json:"period_start"`
	RowCount    int       `json:"row_count"`

	// Rollups
	CostDeviationMean        float64 `json:"cost_deviation_mean"`
	CostDeviationMax         float64 `json:"cost_deviation_max"`
	TimeDeviationMean        float64 `json:"time_deviation_mean"`
	TimeDeviationMax         float64 `json:"time_deviation_max"`
	EquipmentUtilizationMean float64 `json:"equipment_utilization_rate_mean"`
	EquipmentUtilizationMax  float64 `json:"equipment_utilization_rate_max"`
	EnergyIntensity          float64 `json:"energy_intensity"` // mean energy per worker
	WorkerIntensity          float64 `json:"worker_intensity"` // mean worker count
	SafetyIncidentCount      float64 `json:"safety_incident_count"`
	SafetyIncidentRate       float64 `json:"safety_incident_rate"`
	TaskProgressFirst        float64 `json:"task_progress_first"`
	TaskProgressLast         float64 `json:"task_progress_last"`
	TaskProgressMean         float64 `json:"task_progress_mean"`
	MaterialUsageMean        float64 `json:"material_usage_avg"`
	RiskScoreMean            float64 `json:"risk_score_avg"`
	RiskScoreMax             float64 `json:"risk_score_max"`

	// Velocity and health
	ProgressVelocity float64 `json:"progress_velocity"`  // last - first
	DataHealthIndex  float64 `json:"data_health_index"` // 0~100

	// Derived KPIs (Derive에서 채움)
	ResourceUtilization float64 `json:"resource_utilization"`
	CostEfficiency      float64 `json:"cost_efficiency"`
	ScheduleAdherence   float64 `json:"schedule_adherence"`
	ProgressPct         float64 `json:"progress_pct"`
}
