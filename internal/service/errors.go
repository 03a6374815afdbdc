package service

import "errors"

// Sentinel errors shared by every service. Handlers map them to HTTP status
// codes with errors.Is; anything else is an opaque storage failure (500).
var (
	// ErrValidacion marks input rejected before any storage call.
	ErrValidacion = errors.New("datos invalidos")
	// ErrNoEncontrado marks a missing lookup or soft-delete target.
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrConflicto marks a unique-constraint violation (duplicate username).
	ErrConflicto = errors.New("el nombre de usuario ya existe")
	// ErrCredencialesInvalidas never discloses whether the username or the
	// password was wrong.
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
)
