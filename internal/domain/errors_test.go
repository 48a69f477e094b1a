package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockledger-api/internal/domain"
)

func TestErrorf_UnwrapYMensaje(t *testing.T) {
	err := domain.Errorf(domain.ErrInsufficientStock, "Not enough stock. Available: %d, Requested: %d", 6, 7)

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Not enough stock. Available: 6, Requested: 7", err.Error())

	wrapped := fmt.Errorf("crear venta: %w", err)
	assert.Equal(t, "Not enough stock. Available: 6, Requested: 7", domain.Message(wrapped))
	assert.Equal(t, domain.ErrInsufficientStock, domain.KindOf(wrapped))
}

func TestErrorf_SinArgsNoFormatea(t *testing.T) {
	err := domain.Errorf(domain.ErrValidation, "100% required")
	assert.Equal(t, "100% required", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Nil(t, domain.KindOf(errors.New("otro")))
	assert.Equal(t, "otro", domain.Message(errors.New("otro")))
}
