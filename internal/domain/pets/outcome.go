package pets

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Reason clasifica un rechazo. Vacío cuando la operación fue exitosa.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNotFound           Reason = "not_found"
	ReasonInvalidInput       Reason = "invalid_input"
	ReasonPreconditionFailed Reason = "precondition_failed"
)

// Outcome es el resultado de cualquier operación del juego: nunca se usa
// error para rechazos esperados, solo para fallas de infraestructura.
type Outcome struct {
	OK      bool
	Message string
	Reason  Reason
}

func succeed(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

func reject(reason Reason, msg string) Outcome {
	return Outcome{OK: false, Message: msg, Reason: reason}
}

// Err devuelve nil si OK; si no, el sentinel de la razón envuelto con el mensaje.
func (o Outcome) Err() error {
	if o.OK {
		return nil
	}
	var base error
	switch o.Reason {
	case ReasonNotFound:
		base = ErrNotFound
	case ReasonInvalidInput:
		base = ErrInvalidInput
	default:
		base = ErrPreconditionFailed
	}
	return fmt.Errorf("%w: %s", base, o.Message)
}
