package enrollmentController

import (
	"testing"

	"tutorme/config"

	"github.com/stretchr/testify/assert"
)

func TestCommissionSplitConservation(t *testing.T) {
	config.LoadConfig()

	for _, price := range []int64{100, 999, 4000, 12345} {
		fee, earnings := splitPrice(price)
		assert.Equal(t, price, fee+earnings, "split of %d must conserve the price", price)
		assert.GreaterOrEqual(t, fee, int64(0))
		assert.GreaterOrEqual(t, earnings, int64(0))
	}

	fee, earnings := splitPrice(4000)
	assert.EqualValues(t, 800, fee)
	assert.EqualValues(t, 3200, earnings)
}
