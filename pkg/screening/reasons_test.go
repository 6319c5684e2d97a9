package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasons_SortedAndDeduplicated(t *testing.T) {
	r := NewReasons(ReasonRegionCorrelation, ReasonIP, ReasonAmount, ReasonIP, ReasonCardNumber, ReasonIPCorrelation)

	assert.Equal(t, []Reason{ReasonAmount, ReasonCardNumber, ReasonIP, ReasonIPCorrelation, ReasonRegionCorrelation}, r.Items())
	assert.Equal(t, "amount, card-number, ip, ip-correlation, region-correlation", r.Info())
	assert.Equal(t, 5, r.Len())
}

func TestReasons_Empty(t *testing.T) {
	var r Reasons

	assert.True(t, r.Empty())
	assert.Equal(t, "none", r.Info())
	assert.False(t, r.Contains(ReasonAmount))
}

func TestReasons_WithDoesNotMutate(t *testing.T) {
	base := NewReasons(ReasonIP)
	next := base.With(ReasonAmount)

	assert.Equal(t, "ip", base.Info())
	assert.Equal(t, "amount, ip", next.Info())

	items := next.Items()
	items[0] = ReasonRegionCorrelation
	assert.Equal(t, "amount, ip", next.Info())
}
