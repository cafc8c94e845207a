package reminders

import (
	"context"
	"fmt"

	"med-companion/internal/domain/medications"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/notify"
)

// Scheduler mantiene el estado del subsistema de notificaciones
// idempotente respecto a la configuración actual de cada medicamento.
type Scheduler struct {
	notifier notify.Scheduler
	log      logger.Logger
}

func NewScheduler(notifier notify.Scheduler, log logger.Logger) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		log:      log,
	}
}

// Apply reemplaza los triggers del medicamento por el set que corresponde
// a su configuración actual:
//
//  1. Cancela todo trigger tageado con el medication id (idempotencia:
//     re-aplicar la misma config N veces deja el mismo set, sin duplicados).
//  2. Si no hay horas o el medicamento está inactivo, termina ahí.
//  3. Crea un trigger por entrada del plan expandido.
//
// El paso 1 SIEMPRE se completa antes de crear nada; es el único orden
// que evita que dos ediciones seguidas dejen triggers duplicados.
// Las fallas de cancelación se tragan con log; las de creación se
// reportan como warning al caller.
func (s *Scheduler) Apply(ctx context.Context, med medications.Medication) medications.ScheduleOutcome {
	s.cancelAll(ctx, med.ID)

	if !med.Active || len(med.ReminderTimes) == 0 {
		return medications.ScheduleOutcome{TriggerIDs: []string{}}
	}

	plan := ExpandPlan(med.ReminderTimes, med.ReminderFrequency, med.ReminderDays)

	ids := make([]string, 0, len(plan))
	failed := 0
	for _, req := range plan {
		req.Payload = notify.Payload{
			MedicationID:   med.ID,
			MedicationName: med.Name,
		}

		id, err := s.notifier.Schedule(ctx, req)
		if err != nil {
			failed++
			s.log.Warn("reminder schedule failed", map[string]any{
				"medication_id": med.ID,
				"time":          req.Time,
				"recurrence":    string(req.Recurrence),
				"error":         err.Error(),
			})
			continue
		}
		ids = append(ids, id)
	}

	res := medications.ScheduleOutcome{TriggerIDs: ids}
	if failed > 0 {
		res.Warning = fmt.Sprintf("%d of %d reminders could not be scheduled; the medication was saved anyway", failed, len(plan))
	}
	return res
}

// Remove cancela todos los triggers del medicamento (al archivarlo).
func (s *Scheduler) Remove(ctx context.Context, medicationID string) {
	s.cancelAll(ctx, medicationID)
}

func (s *Scheduler) cancelAll(ctx context.Context, medicationID string) {
	existing, err := s.notifier.ListAll(ctx)
	if err != nil {
		s.log.Warn("reminder list failed", map[string]any{
			"medication_id": medicationID,
			"error":         err.Error(),
		})
		return
	}

	for _, tr := range existing {
		if tr.Payload.MedicationID != medicationID {
			continue
		}
		if err := s.notifier.Cancel(ctx, tr.ID); err != nil {
			s.log.Warn("reminder cancel failed", map[string]any{
				"medication_id": medicationID,
				"trigger_id":    tr.ID,
				"error":         err.Error(),
			})
		}
	}
}
