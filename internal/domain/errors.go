package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio. Los handlers los clasifican con errors.Is para elegir el status HTTP.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrInvalidOperation   = errors.New("operación no permitida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// Error error de dominio con mensaje para el cliente; Unwrap devuelve el sentinel (Kind).
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error del tipo kind con mensaje formateado.
func Errorf(kind error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

// Message devuelve el mensaje para el cliente de err.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// KindOf devuelve el sentinel de err, o nil si no es un error de dominio.
func KindOf(err error) error {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for _, k := range []error{ErrNotFound, ErrValidation, ErrInvalidOperation, ErrInsufficientStock, ErrDuplicate, ErrConflict, ErrUnauthorized, ErrForbidden, ErrEmailAlreadyExists} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
