package medications

import "time"

// Medication representa un medicamento registrado por el usuario.
// Dosage y Schedule son texto libre de display (no se parsean); la
// configuración de recordatorios vive en ReminderTimes/ReminderFrequency/
// ReminderDays.
type Medication struct {
	ID     string
	UserID string

	Name        string
	Dosage      string // "500mg", texto libre
	Schedule    string // "2 veces al día", texto libre
	Description string
	Category    Category

	// ReminderTimes: horas "HH:MM", deduplicadas y ascendentes.
	// ReminderDays: weekday 0-6 si weekly, día del mes 1-31 si monthly,
	// vacío si daily.
	ReminderTimes     []string
	ReminderFrequency Frequency
	ReminderDays      []int

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryReminderTime devuelve la primera hora configurada (las horas se
// guardan ordenadas) o "" si no hay recordatorios.
func (m Medication) PrimaryReminderTime() string {
	if len(m.ReminderTimes) == 0 {
		return ""
	}
	return m.ReminderTimes[0]
}
