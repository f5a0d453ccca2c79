package safety

import (
	"fmt"
	"math"
	"time"

	"github.com/logpilot/sitekpi/internal/safetyconfig"
	"github.com/logpilot/sitekpi/internal/telemetry"
)

// =============================================================================
// Safety Rule Engine - 순수 계산기
// =============================================================================

// workerDensityEpsilon: equipment_utilization=0일 때 0 나눗셈 방지
const workerDensityEpsilon = 0.1

// Fixed recommendation blocks per triggered factor.
var (
	vibrationRecommendation = "Inspect all machinery before operation\n" +
		"Reduce concurrent heavy equipment usage\n" +
		"Increase operator breaks (every 2 hours)\n" +
		"Mandatory vibration PPE checks"

	heatRecommendation = "Mandatory hydration breaks every hour\n" +
		"Shift work to cooler hours (avoid 12-4 PM)\n" +
		"Deploy cooling stations with water and shade\n" +
		"Enforce heat-appropriate PPE"

	densityRecommendation = "Stagger work schedules to reduce congestion\n" +
		"Expand work zones (increase spacing)\n" +
		"Deploy additional supervisors\n" +
		"Implement one-way traffic rules"
)

// Engine 일 단위 안전 위험 분류 엔진 (순수 계산기)
// ⭐ SSOT: 임계값은 생성 시점에 명시적으로 주입 - 전역 가변 상태 없음
// 일 간 상태 없음: 각 행에 독립적으로 동일 함수를 적용.
type Engine struct {
	thresholds  safetyconfig.Thresholds
	performance *safetyconfig.ValidationPerformance
}

// NewEngine creates an engine from an explicit configuration value.
func NewEngine(cfg safetyconfig.Config) *Engine {
	return &Engine{
		thresholds:  cfg.Thresholds,
		performance: cfg.Performance,
	}
}

// Thresholds returns the configured thresholds.
func (e *Engine) Thresholds() safetyconfig.Thresholds {
	return e.thresholds
}

// Performance returns validation metadata for display (nil if absent).
func (e *Engine) Performance() *safetyconfig.ValidationPerformance {
	return e.performance
}

// HeatIndex 온습도 결합 열 스트레스 지표
// heat_index = t + 0.5555 · (h/100) · (t − 14.0)
func HeatIndex(temperature, humidity float64) float64 {
	return temperature + 0.5555*(humidity/100)*(temperature-14.0)
}

// WorkerDensity 혼잡도 proxy - 장비 가동률 단위당 인원
func WorkerDensity(workerCount, equipmentUtilization float64) float64 {
	return workerCount / (equipmentUtilization + workerDensityEpsilon)
}

// Assess classifies a single day.
// HIGH_RISK iff 임계값 하나 이상 초과; 초과 항목마다 trigger 설명 1개와
// 고정 권고 블록 1개를 첨부. 심각도 단계 없음.
func (e *Engine) Assess(in DayInput) Assessment {
	heatIndex := HeatIndex(in.Temperature, in.Humidity)
	density := WorkerDensity(in.WorkerCount, in.EquipmentUtilization)

	a := Assessment{
		Date:             in.Date,
		HeatIndex:        heatIndex,
		WorkerDensity:    density,
		Inputs:           in,
		TriggeredFactors: make([]string, 0),
		Recommendations:  make([]string, 0),
		AssessedAt:       time.Now(),
	}

	if in.VibrationLevel > e.thresholds.VibrationLevel {
		a.TriggeredFactors = append(a.TriggeredFactors,
			fmt.Sprintf("Vibration (%.1f > %.1f)", in.VibrationLevel, e.thresholds.VibrationLevel))
		a.Recommendations = append(a.Recommendations, vibrationRecommendation)
	}

	if heatIndex > e.thresholds.HeatIndex {
		a.TriggeredFactors = append(a.TriggeredFactors,
			fmt.Sprintf("Heat Index (%.1f°C > %.1f°C)", heatIndex, e.thresholds.HeatIndex))
		a.Recommendations = append(a.Recommendations, heatRecommendation)
	}

	if density > e.thresholds.WorkerDensity {
		a.TriggeredFactors = append(a.TriggeredFactors,
			fmt.Sprintf("Worker Density (%.2f > %.2f)", density, e.thresholds.WorkerDensity))
		a.Recommendations = append(a.Recommendations, densityRecommendation)
	}

	if len(a.TriggeredFactors) > 0 {
		a.RiskLevel = RiskHigh
	} else {
		a.RiskLevel = RiskLow
	}

	return a
}

// AssessAll applies Assess independently to each day of a
// daily-averaged table. 일 간 교차 상태 없음.
func (e *Engine) AssessAll(days []DayInput) []Assessment {
	out := make([]Assessment, 0, len(days))
	for _, day := range days {
		out = append(out, e.Assess(day))
	}
	return out
}

// DailyAverages builds the engine's input table from raw telemetry:
// 일별 평균 (temperature, humidity, vibration, worker_count,
// equipment_utilization_rate). 행이 없는 날은 건너뜀.
func DailyAverages(ds *telemetry.Dataset) []DayInput {
	sorted := ds.SortByTimestamp()

	var out []DayInput
	i := 0
	for i < len(sorted.Rows) {
		ts := sorted.Rows[i].Timestamp
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		next := day.AddDate(0, 0, 1)

		j := i
		for j < len(sorted.Rows) && sorted.Rows[j].Timestamp.Before(next) {
			j++
		}

		rows := sorted.Rows[i:j]
		out = append(out, DayInput{
			Date:                 day,
			VibrationLevel:       meanOf(rows, telemetry.ColVibrationLevel),
			Temperature:          meanOf(rows, telemetry.ColTemperature),
			Humidity:             meanOf(rows, telemetry.ColHumidity),
			WorkerCount:          meanOf(rows, telemetry.ColWorkerCount),
			EquipmentUtilization: meanOf(rows, telemetry.ColEquipmentUtilizationRate),
		})
		i = j
	}

	return out
}

func meanOf(rows []telemetry.Row, c telemetry.Column) float64 {
	var sum float64
	count := 0
	for _, row := range rows {
		v := row.Value(c)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0 // 해당 일에 관측 없음 - 중립값
	}
	return sum / float64(count)
}
