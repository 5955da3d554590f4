package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), KES)
		require.NoError(t, err)
		assert.Equal(t, KES, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyKES(t *testing.T) {
	m := NewMoneyKES(decimal.NewFromInt(15000))
	assert.Equal(t, KES, m.Currency())
	assert.Equal(t, int64(15000), m.Amount().IntPart())
}

func TestNewMoneyKESFromInt(t *testing.T) {
	m := NewMoneyKESFromInt(2500)
	assert.Equal(t, KES, m.Currency())
	assert.Equal(t, int64(2500), m.Amount().IntPart())
}

func TestNewMoneyKESFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyKESFromString("123.45")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyKESFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestZeroKES(t *testing.T) {
	m := ZeroKES()
	assert.True(t, m.IsZero())
	assert.Equal(t, KES, m.Currency())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyKESFromInt(15000)
		b := NewMoneyKESFromInt(5000)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), sum.Amount().IntPart())
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyKESFromInt(100)
		b, _ := NewMoney(decimal.NewFromInt(100), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyKESFromInt(25000)
	b := NewMoneyKESFromInt(10000)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), diff.Amount().IntPart())
}

func TestMoneyMultiplyByFloat(t *testing.T) {
	base := NewMoneyKESFromInt(15000)
	scaled := base.MultiplyByFloat(1.2)
	assert.Equal(t, int64(18000), scaled.Amount().IntPart())
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyKESFromInt(10000)
	big := NewMoneyKESFromInt(25000)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	gte, err := big.GreaterThanOrEqual(big)
	require.NoError(t, err)
	assert.True(t, gte)
}

func TestMoneyClamp(t *testing.T) {
	floor := NewMoneyKESFromInt(10000)
	cap := NewMoneyKESFromInt(25000)

	t.Run("below floor clamps up", func(t *testing.T) {
		got, err := NewMoneyKESFromInt(8000).Clamp(floor, cap)
		require.NoError(t, err)
		assert.True(t, got.Equals(floor))
	})

	t.Run("above cap clamps down", func(t *testing.T) {
		got, err := NewMoneyKESFromInt(31000).Clamp(floor, cap)
		require.NoError(t, err)
		assert.True(t, got.Equals(cap))
	})

	t.Run("within range unchanged", func(t *testing.T) {
		mid := NewMoneyKESFromInt(18000)
		got, err := mid.Clamp(floor, cap)
		require.NoError(t, err)
		assert.True(t, got.Equals(mid))
	})

	t.Run("mixed currencies rejected", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(100), USD)
		_, err := usd.Clamp(floor, cap)
		assert.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyKESFromInt(15000)
	assert.Equal(t, "15000.00 KES", m.String())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyKESFromInt(15000)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"15000","currency":"KES"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(m))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string amount", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12345.67"))
		assert.Equal(t, KES, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12345.67)))
	})

	t.Run("nil becomes zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})
}
