package notify

import "context"

// Recurrence define con qué cadencia se repite un trigger.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Payload viaja opaco dentro del trigger para poder correlacionar una
// notificación entregada con su medicamento sin hacer lookup extra.
type Payload struct {
	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name"`
}

// TriggerRequest describe un trigger recurrente a programar.
// Day aplica según Recurrence: weekday 0-6 (weekly), día del mes 1-31
// (monthly). Para daily se ignora (usar -1).
type TriggerRequest struct {
	Time       string // "HH:MM"
	Recurrence Recurrence
	Day        int
	Payload    Payload
}

// Trigger es un trigger ya programado en el subsistema de notificaciones.
type Trigger struct {
	ID         string
	Time       string
	Recurrence Recurrence
	Day        int
	Payload    Payload
}

// Scheduler es el contrato mínimo que el core necesita del subsistema
// de notificaciones: programar, cancelar y listar (para buscar por tag).
type Scheduler interface {
	Schedule(ctx context.Context, req TriggerRequest) (string, error)
	Cancel(ctx context.Context, triggerID string) error
	ListAll(ctx context.Context) ([]Trigger, error)
}
