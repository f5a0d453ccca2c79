package kpi

// Definition describes a KPI for downstream display.
type Definition struct {
	Name           string `json:"name"`
	Definition     string `json:"definition"`
	Formula        string `json:"formula"`
	Unit           string `json:"unit"`
	Interpretation string `json:"interpretation"`
}

// Definitions returns the KPI dictionary keyed by output column name.
// 하류 대시보드/리포트 표시용 - 계산 로직과는 무관.
func Definitions() map[string]Definition {
	return map[string]Definition{
		"cost_deviation_mean": {
			Name:           "Average Cost Deviation",
			Definition:     "Mean deviation from budgeted costs over the period",
			Formula:        "AVG(cost_deviation)",
			Unit:           "currency",
			Interpretation: "Positive = over budget, Negative = under budget",
		},
		"cost_deviation_max": {
			Name:           "Maximum Cost Deviation",
			Definition:     "Largest cost deviation observed in the period",
			Formula:        "MAX(cost_deviation)",
			Unit:           "currency",
			Interpretation: "Peak budget variance",
		},
		"time_deviation_mean": {
			Name:           "Average Time Deviation",
			Definition:     "Mean deviation from scheduled timeline",
			Formula:        "AVG(time_deviation)",
			Unit:           "days",
			Interpretation: "Positive = ahead, Negative = behind schedule",
		},
		"time_deviation_max": {
			Name:           "Maximum Time Deviation",
			Definition:     "Largest time deviation in the period",
			Formula:        "MAX(time_deviation)",
			Unit:           "days",
			Interpretation: "Peak schedule variance",
		},
		"equipment_utilization_rate_mean": {
			Name:           "Average Equipment Utilization",
			Definition:     "Mean percentage of equipment actively in use",
			Formula:        "AVG(equipment_utilization_rate)",
			Unit:           "%",
			Interpretation: "Higher is better, indicates efficient resource use",
		},
		"energy_intensity": {
			Name:           "Energy Intensity",
			Definition:     "Average energy consumption per worker",
			Formula:        "AVG(energy_consumption / (worker_count + 1))",
			Unit:           "kWh per worker",
			Interpretation: "Lower may indicate efficiency, higher may indicate intensive work",
		},
		"worker_intensity": {
			Name:           "Worker Intensity",
			Definition:     "Average number of workers on site",
			Formula:        "AVG(worker_count)",
			Unit:           "workers",
			Interpretation: "Workforce deployment level",
		},
		"safety_incident_rate": {
			Name:           "Safety Incident Rate",
			Definition:     "Average incidents per time period",
			Formula:        "AVG(safety_incidents)",
			Unit:           "incidents per period",
			Interpretation: "Lower is better, target is 0",
		},
		"progress_velocity": {
			Name:           "Progress Velocity",
			Definition:     "Rate of change in task completion",
			Formula:        "task_progress_last - task_progress_first",
			Unit:           "% per period",
			Interpretation: "Positive = progressing, Negative = regressing",
		},
		"data_health_index": {
			Name:           "Data Health Index",
			Definition:     "Composite data quality score (0-100)",
			Formula:        "Weighted avg: Completeness(40%) + Outliers(30%) + Gaps(15%) + Validity(15%)",
			Unit:           "score (0-100)",
			Interpretation: "Higher is better, target >= 95",
		},
		"resource_utilization": {
			Name:           "Resource Utilization",
			Definition:     "Combined equipment and workforce utilization",
			Formula:        "0.6 * equipment_util + 0.4 * normalized_worker_intensity",
			Unit:           "%",
			Interpretation: "Overall resource efficiency",
		},
		"cost_efficiency": {
			Name:           "Cost Efficiency",
			Definition:     "Inverse of cost deviation (higher = more efficient)",
			Formula:        "100 - (|cost_deviation| / max_deviation * 100)",
			Unit:           "score (0-100)",
			Interpretation: "Higher is better, 100 = perfect adherence",
		},
		"schedule_adherence": {
			Name:           "Schedule Adherence",
			Definition:     "Inverse of time deviation (higher = better on-time)",
			Formula:        "100 - (|time_deviation| / max_deviation * 100)",
			Unit:           "score (0-100)",
			Interpretation: "Higher is better, 100 = perfect on-time",
		},
		"progress_pct": {
			Name:           "Progress Percentage",
			Definition:     "Latest task completion percentage in period",
			Formula:        "LAST(task_progress)",
			Unit:           "%",
			Interpretation: "Project completion status",
		},
	}
}
