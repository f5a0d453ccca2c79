package safety

import "time"

// =============================================================================
// Risk Classification Types
// =============================================================================

// RiskLevel 일 단위 위험 분류
type RiskLevel string

const (
	RiskHigh RiskLevel = "HIGH_RISK"
	RiskLow  RiskLevel = "LOW_RISK"
)

// DayInput is the daily-averaged measurements the engine classifies.
// 원시 일 평균에서 계산 - 정제/집계 파이프라인과 독립된 경로.
type DayInput struct {
	Date                 time.Time `json:"date"`
	VibrationLevel       float64   `json:"vibration_level"`
	Temperature          float64   `json:"temperature"`
	Humidity             float64   `json:"humidity"`
	WorkerCount          float64   `json:"worker_count"`
	EquipmentUtilization float64   `json:"equipment_utilization"`
}

// Assessment is the per-day output of the rule engine.
// ⭐ SSOT: HIGH_RISK ⟺ 임계값 3개 중 하나 이상 초과 (가중치 없음)
type Assessment struct {
	Date             time.Time `json:"date"`
	RiskLevel        RiskLevel `json:"risk_level"`
	HeatIndex        float64   `json:"heat_index"`
	WorkerDensity    float64   `json:"worker_density"`
	Inputs           DayInput  `json:"inputs"`
	TriggeredFactors []string  `json:"triggered_factors"`
	Recommendations  []string  `json:"recommendations"`
	AssessedAt       time.Time `json:"assessed_at"`
}

// IsHighRisk tells if the day was classified as high risk.
func (a Assessment) IsHighRisk() bool {
	return a.RiskLevel == RiskHigh
}
