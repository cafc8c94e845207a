package ai

import "context"

// MedicationSummary es lo mínimo que el asistente necesita saber de un
// medicamento para razonar sobre interacciones o responder en el chat.
type MedicationSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// PatientContext es contexto opcional del paciente (perfil fuera de scope,
// solo se pasa lo que el caller tenga a mano).
type PatientContext struct {
	Age        int      `json:"age,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
	Allergies  []string `json:"allergies,omitempty"`
}

// Finding es una interacción puntual detectada entre dos o más medicamentos.
type Finding struct {
	Medications    []string `json:"medications"`
	Severity       string   `json:"severity"` // low, moderate, high, severe
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// InteractionReport es el resultado del análisis de seguridad.
type InteractionReport struct {
	Safe         bool      `json:"safe"`
	Interactions []Finding `json:"interactions"`
	Warnings     []string  `json:"warnings"`
}

// ChatTurn es un turno de conversación (rol user o assistant).
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant verifica combinaciones peligrosas y responde turnos de chat.
type Assistant interface {
	CheckInteractions(ctx context.Context, meds []MedicationSummary, patient PatientContext) (InteractionReport, error)
	Chat(ctx context.Context, turns []ChatTurn, meds []MedicationSummary, patient PatientContext) (string, error)
}
