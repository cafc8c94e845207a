package chat

import "time"

// Role del turno de conversación.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn es un turno persistido del chat. Content es el texto ya limpio
// que vio el usuario (el raw del asistente solo vive en tránsito).
type Turn struct {
	ID      string
	UserID  string
	Role    Role
	Content string

	CreatedAt time.Time
}

// Draft es un medicamento parcialmente extraído de la respuesta del
// asistente, pendiente de revisión del usuario. No es una entidad: es
// input transitorio para la creación de medicamentos.
type Draft struct {
	Name        string `json:"name"`
	Dosage      string `json:"dosage,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}
