// Package storage define los sentinels de falla de infraestructura de
// persistencia, compartidos entre los backends y los handlers que
// traducen la causa a una respuesta HTTP.
package storage

import "errors"

var (
	// ErrNotProvisioned: el esquema no existe (tablas sin migrar).
	// Problema del operador, no del request.
	ErrNotProvisioned = errors.New("storage not provisioned")

	// ErrPermissionDenied: el rol de servicio no tiene permisos
	// suficientes sobre el esquema.
	ErrPermissionDenied = errors.New("storage permission denied")
)
