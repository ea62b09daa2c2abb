package kernel_test

import (
	"testing"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should round to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is a zero amount", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}

func TestMoneyFromString(t *testing.T) {
	m, err := kernel.MoneyFromString("129.9")
	require.NoError(t, err)
	assert.Equal(t, "129.90", m.String())

	_, err = kernel.MoneyFromString("abc")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	hundred := kernel.MustMoney("100")
	fifty := kernel.MustMoney("50")

	assert.True(t, hundred.Times(2).Add(fifty).Equal(kernel.MustMoney("250")))
	assert.True(t, hundred.Times(0).IsZero())
	assert.True(t, hundred.SubClamped(fifty).Equal(fifty))

	t.Run("subtraction clamps at zero", func(t *testing.T) {
		result := kernel.MustMoney("1000").SubClamped(kernel.MustMoney("1500"))

		assert.True(t, result.IsZero())
	})
}

func TestMustMoney_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { kernel.MustMoney("-3") })
}
