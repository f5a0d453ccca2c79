// Package report renders KPI and risk tables for downstream consumers.
// 코어 파이프라인의 출력 직렬화는 collaborator 관심사 - 여기서는
// XLSX 표 형태만 제공.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/logpilot/sitekpi/internal/kpi"
	"github.com/logpilot/sitekpi/internal/safety"
)

// BuildKPIXLSX renders the KPI table to an XLSX workbook:
// summary sheet + one row per period.
func BuildKPIXLSX(records []kpi.Record, freq kpi.Frequency) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	kpiSheet := "kpis"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(kpiSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Project KPI Report")
	_ = f.SetCellValue(summarySheet, "A3", "Frequency")
	_ = f.SetCellValue(summarySheet, "B3", string(freq))
	_ = f.SetCellValue(summarySheet, "A4", "Periods")
	_ = f.SetCellValue(summarySheet, "B4", len(records))

	headers := []string{
		"period_start", "row_count",
		"cost_deviation_mean", "cost_deviation_max",
		"time_deviation_mean", "time_deviation_max",
		"equipment_utilization_rate_mean", "equipment_utilization_rate_max",
		"energy_intensity", "worker_intensity",
		"safety_incident_count", "safety_incident_rate",
		"task_progress_first", "task_progress_last", "task_progress_mean",
		"material_usage_avg", "risk_score_avg", "risk_score_max",
		"progress_velocity", "data_health_index",
		"resource_utilization", "cost_efficiency", "schedule_adherence", "progress_pct",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(kpiSheet, cell, h)
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.PeriodStart.Format("2006-01-02"), rec.RowCount,
			rec.CostDeviationMean, rec.CostDeviationMax,
			rec.TimeDeviationMean, rec.TimeDeviationMax,
			rec.EquipmentUtilizationMean, rec.EquipmentUtilizationMax,
			rec.EnergyIntensity, rec.WorkerIntensity,
			rec.SafetyIncidentCount, rec.SafetyIncidentRate,
			rec.TaskProgressFirst, rec.TaskProgressLast, rec.TaskProgressMean,
			rec.MaterialUsageMean, rec.RiskScoreMean, rec.RiskScoreMax,
			rec.ProgressVelocity, rec.DataHealthIndex,
			rec.ResourceUtilization, rec.CostEfficiency, rec.ScheduleAdherence, rec.ProgressPct,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(kpiSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRiskXLSX renders the daily risk table to an XLSX workbook.
func BuildRiskXLSX(assessments []safety.Assessment) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "risk"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Date")
	_ = f.SetCellValue(sheet, "B1", "Risk Level")
	_ = f.SetCellValue(sheet, "C1", "Heat Index")
	_ = f.SetCellValue(sheet, "D1", "Worker Density")
	_ = f.SetCellValue(sheet, "E1", "Vibration")
	_ = f.SetCellValue(sheet, "F1", "Triggered Factors")

	for i, a := range assessments {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.Date.Format("2006-01-02"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(a.RiskLevel))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.HeatIndex)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), a.WorkerDensity)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), a.Inputs.VibrationLevel)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), strings.Join(a.TriggeredFactors, "; "))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
