package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_Validate(t *testing.T) {
	assert.True(t, EUR.Validate())
	assert.True(t, Currency("nok").Validate())
	assert.False(t, Currency("").Validate())
	assert.False(t, Currency("EURO").Validate())
	assert.False(t, Currency("E1R").Validate())
}

func TestCurrency_Normalize(t *testing.T) {
	assert.Equal(t, EUR, Currency(" eur ").Normalize())
	assert.Equal(t, USD, USD.Normalize())
}
