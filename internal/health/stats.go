package health

import (
	"math"
	"sort"
)

// =============================================================================
// 통계 유틸리티
// =============================================================================

// Mean 평균 계산 (NaN 제외)
func Mean(values []float64) float64 {
	var sum float64
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Median 중앙값 계산 (NaN 제외)
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile 분위수 계산 (선형 보간, NaN 제외)
// p: 0.0 ~ 1.0
func Quantile(values []float64, p float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}

	sort.Float64s(clean)

	if p <= 0 {
		return clean[0]
	}
	if p >= 1 {
		return clean[len(clean)-1]
	}

	idx := p * float64(len(clean)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(clean) {
		return clean[len(clean)-1]
	}

	// 선형 보간
	weight := idx - float64(lower)
	return clean[lower]*(1-weight) + clean[upper]*weight
}
