package kpi

import "math"

// =============================================================================
// Derived KPI Engine - 2차 KPI 계산
// =============================================================================

// Derive computes second-order KPIs over the complete record sequence
// and then replaces every remaining NaN with 0.
// ⭐ 정책: fill(0)은 명시적 선택 - "데이터 없음"과 "값 0"이 하류에서
// 구분 불가능해지는 알려진 한계 (빈 기간의 health도 0이 됨).
// Records are extended in place; 이후 불변으로 취급.
func Derive(records []Record) {
	deriveResourceUtilization(records)
	deriveEfficiency(records)

	for i := range records {
		if !math.IsNaN(records[i].TaskProgressLast) {
			records[i].ProgressPct = records[i].TaskProgressLast
		}
		records[i].fillZero()
	}
}

// deriveResourceUtilization = 0.6·equipment_mean + 0.4·(worker/max(worker)·100)
// worker_intensity가 없거나 max가 0이면 equipment_mean 단독으로 폴백.
func deriveResourceUtilization(records []Record) {
	maxWorker := math.NaN()
	for _, r := range records {
		if math.IsNaN(r.WorkerIntensity) {
			continue
		}
		if math.IsNaN(maxWorker) || r.WorkerIntensity > maxWorker {
			maxWorker = r.WorkerIntensity
		}
	}

	for i := range records {
		equip := records[i].EquipmentUtilizationMean
		if math.IsNaN(equip) {
			continue
		}

		worker := records[i].WorkerIntensity
		if math.IsNaN(worker) || math.IsNaN(maxWorker) || maxWorker == 0 {
			records[i].ResourceUtilization = equip
			continue
		}

		records[i].ResourceUtilization = 0.6*equip + 0.4*(worker/maxWorker*100)
	}
}

// deriveEfficiency computes cost_efficiency and schedule_adherence:
// 100 − (|deviation_mean| / max(|deviation_mean|) · 100)
// 관측된 편차가 전혀 없으면 (max=0) 전 기간 100 (완전 준수).
func deriveEfficiency(records []Record) {
	costEff := normalizedInverse(records, func(r Record) float64 { return r.CostDeviationMean })
	schedAdh := normalizedInverse(records, func(r Record) float64 { return r.TimeDeviationMean })

	for i := range records {
		records[i].CostEfficiency = costEff[i]
		records[i].ScheduleAdherence = schedAdh[i]
	}
}

func normalizedInverse(records []Record, metric func(Record) float64) []float64 {
	out := make([]float64, len(records))

	maxDev := math.NaN()
	for _, r := range records {
		v := metric(r)
		if math.IsNaN(v) {
			continue
		}
		if abs := math.Abs(v); math.IsNaN(maxDev) || abs > maxDev {
			maxDev = math.Abs(v)
		}
	}

	for i, r := range records {
		v := metric(r)
		switch {
		case math.IsNaN(maxDev):
			out[i] = math.NaN() // 해당 컬럼 자체가 없음 - 파생 건너뜀
		case maxDev == 0:
			out[i] = 100 // 편차 관측 없음 = 완전 준수
		case math.IsNaN(v):
			out[i] = math.NaN()
		default:
			out[i] = 100 - math.Abs(v)/maxDev*100
		}
	}

	return out
}

// fillZero replaces every NaN metric with 0.
func (r *Record) fillZero() {
	fields := []*float64{
		&r.CostDeviationMean, &r.CostDeviationMax,
		&r.TimeDeviationMean, &r.TimeDeviationMax,
		&r.EquipmentUtilizationMean, &r.EquipmentUtilizationMax,
		&r.EnergyIntensity, &r.WorkerIntensity,
		&r.SafetyIncidentCount, &r.SafetyIncidentRate,
		&r.TaskProgressFirst, &r.TaskProgressLast, &r.TaskProgressMean,
		&r.MaterialUsageMean,
		&r.RiskScoreMean, &r.RiskScoreMax,
		&r.ProgressVelocity, &r.DataHealthIndex,
		&r.ResourceUtilization, &r.CostEfficiency, &r.ScheduleAdherence, &r.ProgressPct,
	}
	for _, f := range fields {
		if math.IsNaN(*f) {
			*f = 0
		}
	}
}
