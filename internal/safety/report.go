package safety

import (
	"fmt"
	"strings"
	"time"
)

// AlertReport renders a formatted alert report for printing/email.
func (e *Engine) AlertReport(a Assessment) string {
	var b strings.Builder
	line := strings.Repeat("=", 70)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "CONSTRUCTION SITE SAFETY ALERT")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "\nDate:      %s\n", a.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Generated: %s\n", a.AssessedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "\nRISK ASSESSMENT: %s\n", a.RiskLevel)

	if a.IsHighRisk() {
		fmt.Fprintln(&b, "\nALERT TRIGGERS:")
		for _, trigger := range a.TriggeredFactors {
			fmt.Fprintf(&b, "  - %s\n", trigger)
		}

		fmt.Fprintln(&b, "\nREQUIRED ACTIONS:")
		for i, rec := range a.Recommendations {
			fmt.Fprintf(&b, "\n  %d.\n", i+1)
			for _, action := range strings.Split(rec, "\n") {
				fmt.Fprintf(&b, "     - %s\n", action)
			}
		}
	} else {
		fmt.Fprintln(&b, "\nNo elevated risk factors detected.")
		fmt.Fprintln(&b, "Standard safety protocols apply.")
	}

	fmt.Fprintln(&b, "\nMEASURED VALUES:")
	fmt.Fprintf(&b, "  Vibration Level:  %.2f\n", a.Inputs.VibrationLevel)
	fmt.Fprintf(&b, "  Heat Index:       %.2f°C\n", a.HeatIndex)
	fmt.Fprintf(&b, "  Worker Density:   %.2f\n", a.WorkerDensity)
	fmt.Fprintf(&b, "  Temperature:      %.2f°C\n", a.Inputs.Temperature)
	fmt.Fprintf(&b, "  Humidity:         %.1f%%\n", a.Inputs.Humidity)
	fmt.Fprintf(&b, "  Worker Count:     %.0f\n", a.Inputs.WorkerCount)

	fmt.Fprintln(&b, "\nSYSTEM PERFORMANCE (Validation):")
	if p := e.performance; p != nil {
		fmt.Fprintf(&b, "  Recall:    %.2f (catches high-risk days)\n", p.Recall)
		fmt.Fprintf(&b, "  Precision: %.2f (alert accuracy)\n", p.Precision)
		fmt.Fprintf(&b, "  F1 Score:  %.3f\n", p.F1Score)
	} else {
		fmt.Fprintln(&b, "  (Performance metrics not available)")
	}

	fmt.Fprintln(&b, "\n"+line)
	fmt.Fprintln(&b, "This alert supplements, not replaces, safety judgment.")
	fmt.Fprintln(&b, line)

	return b.String()
}
