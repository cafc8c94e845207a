package adherence

import "time"

// DoseLog registra si la dosis de un medicamento se tomó o se saltó en
// un día calendario. Invariante: existe a lo sumo una entrada por
// (medicationID, día calendario); "la de hoy" se resuelve truncando
// ScheduledTime a medianoche y comparando fechas, nunca por igualdad
// exacta de timestamps.
type DoseLog struct {
	ID           string
	UserID       string
	MedicationID string

	// ScheduledTime es el bucket de día al que pertenece la entrada; la
	// hora se toma de la hora primaria de recordatorio si existe, si no,
	// inicio del día.
	ScheduledTime time.Time
	TakenAt       *time.Time

	Status       Status
	ConfirmedVia ConfirmedVia

	CreatedAt time.Time
	UpdatedAt time.Time
}
