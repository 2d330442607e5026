package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/profit-ledger/internal/domain"
)

func TestNoCostBasisError_IsYAs(t *testing.T) {
	err := fmt.Errorf("reporte: %w", &domain.NoCostBasisError{SKU: "A", Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)})

	assert.True(t, errors.Is(err, domain.ErrNoCostBasis))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))

	var nc *domain.NoCostBasisError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, "A", nc.SKU)
	assert.Contains(t, err.Error(), "2024-01-03")
}

func TestInvalid_EsErrInvalidInput(t *testing.T) {
	err := domain.Invalid("quantity", "gt")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "quantity")
}

func TestUnavailable(t *testing.T) {
	assert.NoError(t, domain.Unavailable("insertar", nil))

	cause := errors.New("disk I/O error")
	err := domain.Unavailable("insertar compra", cause)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
	assert.True(t, errors.Is(err, cause))
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024-13-01", "29/02/2024", "2023-02-29"} {
		_, err := domain.ParseDate(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestMonthRange_Diciembre(t *testing.T) {
	start, end := domain.MonthRange(2024, time.December)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
