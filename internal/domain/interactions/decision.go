package interactions

// SameIDSet compara dos sets de ids como secuencias ordenadas ascendente:
// misma longitud y mismos elementos par a par. Los callers guardan los
// sets ya ordenados (medications.ActiveIDs / CheckRecord.MedicationIDs).
func SameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ShouldRecheck decide si un nuevo análisis de interacciones se justifica.
// Función pura de (set actual, último set observado, primera carga); no
// sabe nada de navegación ni de pantallas (eso es problema de la UI).
//
//   - Menos de 2 medicamentos: nunca; el resultado seguro se sintetiza
//     sin llamar al asistente.
//   - Primera carga de la sesión: sí (el servicio consulta primero el
//     cache persistido y solo corre el check si no hay match exacto).
//   - El set cambió (alta o baja de cualquier medicamento): sí.
//   - Mismo set, no es primera carga (ej. el usuario solo volvió a la
//     pantalla): no; se reutiliza el resultado existente. Esta regla
//     existe para no re-invocar una llamada cara y rate-limited en cada
//     focus.
func ShouldRecheck(currentIDs, lastCheckedIDs []string, initialLoad bool) bool {
	if len(currentIDs) < 2 {
		return false
	}
	if initialLoad {
		return true
	}
	return !SameIDSet(currentIDs, lastCheckedIDs)
}
