package reminders

import (
	"med-companion/internal/domain/medications"
	"med-companion/internal/ports/notify"
)

// ExpandPlan convierte la configuración de recordatorios en el set exacto
// de triggers que deberían existir. Es una función pura; el orden de
// salida es determinístico (days asc × times asc).
//
// - daily:   un trigger por hora (days se ignora)
// - weekly:  producto cruzado (day, hora), day = weekday 0-6
// - monthly: producto cruzado (day, hora), day = día del mes 1-31
func ExpandPlan(times []string, freq medications.Frequency, days []int) []notify.TriggerRequest {
	if len(times) == 0 {
		return nil
	}

	switch freq {
	case medications.FrequencyWeekly, medications.FrequencyMonthly:
		out := make([]notify.TriggerRequest, 0, len(times)*len(days))
		for _, d := range days {
			for _, t := range times {
				out = append(out, notify.TriggerRequest{
					Time:       t,
					Recurrence: recurrenceFor(freq),
					Day:        d,
				})
			}
		}
		return out
	default:
		// daily (y cualquier valor ya validado aguas arriba)
		out := make([]notify.TriggerRequest, 0, len(times))
		for _, t := range times {
			out = append(out, notify.TriggerRequest{
				Time:       t,
				Recurrence: notify.RecurrenceDaily,
				Day:        -1,
			})
		}
		return out
	}
}

func recurrenceFor(freq medications.Frequency) notify.Recurrence {
	switch freq {
	case medications.FrequencyWeekly:
		return notify.RecurrenceWeekly
	case medications.FrequencyMonthly:
		return notify.RecurrenceMonthly
	default:
		return notify.RecurrenceDaily
	}
}
