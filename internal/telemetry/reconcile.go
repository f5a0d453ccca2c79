package telemetry

import "math"

// =============================================================================
// Reconciler - 집계 전 원시 텔레메트리 정규화
// =============================================================================

const (
	// energyUnitThreshold: 이 값 미만의 energy_consumption은 단위 오류로
	// 간주하고 1000배 보정. 실제 저전력 구간을 오보정할 수 있는
	// 휴리스틱이며 계측된 단위 플래그가 아님 - 도메인 검증 필요.
	energyUnitThreshold = 50.0
	energyUnitScale     = 1000.0

	// 물리적으로 타당한 범위 (클램프, 행 제거 아님)
	temperatureMin = -30.0
	temperatureMax = 80.0
	humidityMin    = 0.0
	humidityMax    = 100.0
)

// Reconcile normalizes raw telemetry rows before any aggregation.
// 순수 함수: 입력을 수정하지 않고 보정된 복사본을 반환.
// - energy_consumption 단위 보정 (< 50 → ×1000)
// - temperature [-30, 80], humidity [0, 100] 클램프
// - 없는 컬럼에 대한 규칙은 건너뜀, 어떤 행도 제거하지 않음
func Reconcile(ds *Dataset) Dataset {
	out := ds.SortByTimestamp()

	fixEnergy := out.Has(ColEnergyConsumption)
	fixTemp := out.Has(ColTemperature)
	fixHumidity := out.Has(ColHumidity)

	for i := range out.Rows {
		row := &out.Rows[i]

		if fixEnergy && !math.IsNaN(row.EnergyConsumption) && row.EnergyConsumption < energyUnitThreshold {
			row.EnergyConsumption *= energyUnitScale
		}

		if fixTemp {
			row.Temperature = clamp(row.Temperature, temperatureMin, temperatureMax)
		}
		if fixHumidity {
			row.Humidity = clamp(row.Humidity, humidityMin, humidityMax)
		}
	}

	return out
}

// clamp bounds v to [lo, hi]. NaN passes through unchanged.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
