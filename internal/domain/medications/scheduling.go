package medications

import "context"

// ScheduleOutcome es el resultado de recalcular los triggers de un
// medicamento al guardarlo. Warning no es fatal: el medicamento ya quedó
// persistido aunque el scheduling haya fallado.
type ScheduleOutcome struct {
	TriggerIDs []string
	Warning    string
}

// ReminderApplier es lo que este módulo necesita del scheduler de
// recordatorios (lo satisface *reminders.Scheduler). Declarado acá para
// no invertir la dirección de imports entre módulos.
type ReminderApplier interface {
	Apply(ctx context.Context, med Medication) ScheduleOutcome
	Remove(ctx context.Context, medicationID string)
}
