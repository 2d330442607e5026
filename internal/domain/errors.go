package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNoCostBasis        = errors.New("sin base de costo")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)

// NoCostBasisError indica que no hay compras del SKU en o antes de la fecha de la venta.
// Nunca debe convertirse en costo cero: eso inflaría la ganancia.
type NoCostBasisError struct {
	SKU  string
	Date time.Time
}

func (e *NoCostBasisError) Error() string {
	return fmt.Sprintf("%s: SKU %q no tiene compras hasta %s", ErrNoCostBasis, e.SKU, e.Date.Format(DateLayout))
}

// Is permite errors.Is(err, ErrNoCostBasis).
func (e *NoCostBasisError) Is(target error) bool {
	return target == ErrNoCostBasis
}

// InvalidInputError detalla qué campos fueron rechazados (campo -> regla).
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %v", ErrInvalidInput, e.Fields)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un InvalidInputError para un solo campo.
func Invalid(field, rule string) error {
	return &InvalidInputError{Fields: map[string]string{field: rule}}
}

// Unavailable envuelve un fallo de persistencia como ErrStorageUnavailable conservando la causa.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
