package interactions

import (
	"time"

	"med-companion/internal/ports/ai"
)

// CheckRecord es el resultado persistido de un análisis de interacciones.
// MedicationIDs es el set EXACTO chequeado, guardado ordenado ascendente;
// un set nuevo genera un registro nuevo (se supersede, no se muta).
type CheckRecord struct {
	ID     string
	UserID string

	MedicationIDs []string
	Report        ai.InteractionReport
	Severity      string

	CheckedAt time.Time
}

// severityRank ordena severidades para calcular la del registro.
var severityRank = map[string]int{
	"none":     0,
	"low":      1,
	"moderate": 2,
	"high":     3,
	"severe":   4,
}

// OverallSeverity devuelve la severidad más alta entre los findings del
// reporte, o "none" si no hay ninguno.
func OverallSeverity(report ai.InteractionReport) string {
	out := "none"
	for _, f := range report.Interactions {
		s := f.Severity
		if severityRank[s] > severityRank[out] {
			out = s
		}
	}
	return out
}
