package adherence

// Status es el estado de una dosis en un día calendario.
// "missed" es solo un default/placeholder de schema: el core nunca
// transiciona un día sin log a missed automáticamente (eso queda para
// un job futuro, si producto lo define).
type Status string

const (
	StatusTaken   Status = "taken"
	StatusSkipped Status = "skipped"
	StatusMissed  Status = "missed"
)

// ConfirmedVia indica desde dónde se confirmó la dosis.
type ConfirmedVia string

const (
	ViaManual       ConfirmedVia = "manual"       // botón in-app
	ViaNotification ConfirmedVia = "notification" // acción de la notificación
	ViaAuto         ConfirmedVia = "auto"         // reservado para entradas del sistema
)

// ValidVia valida el origen de confirmación que manda el cliente.
func ValidVia(v ConfirmedVia) bool {
	switch v {
	case ViaManual, ViaNotification, ViaAuto:
		return true
	default:
		return false
	}
}
