package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.Equal(t, "none", NormalizeStatus(nil))
	assert.Equal(t, "none", NormalizeStatus(s("  ")))
	assert.Equal(t, "active", NormalizeStatus(s("active")))
	assert.Equal(t, "trialing", NormalizeStatus(s("trialing")))
	assert.Equal(t, "past_due", NormalizeStatus(s("past_due")))
	assert.Equal(t, "past_due", NormalizeStatus(s("unpaid")))
	assert.Equal(t, "canceled", NormalizeStatus(s("canceled")))
	assert.Equal(t, "canceled", NormalizeStatus(s("incomplete_expired")))
	assert.Equal(t, "paused", NormalizeStatus(s(" paused ")))
}

func TestGrantsAccess(t *testing.T) {
	assert.True(t, GrantsAccess("active"))
	assert.True(t, GrantsAccess("trialing"))
	assert.False(t, GrantsAccess("past_due"))
	assert.False(t, GrantsAccess("canceled"))
	assert.False(t, GrantsAccess("none"))
}
