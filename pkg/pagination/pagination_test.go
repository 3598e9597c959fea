package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 35, NormalizeLimit(35))
	assert.Equal(t, MaxLimit, NormalizeLimit(500))
}

func TestInRange(t *testing.T) {
	s := State{Total: 41, Pages: 3, CurrentPage: 2, Limit: 20}
	assert.False(t, s.InRange(0))
	assert.True(t, s.InRange(1))
	assert.True(t, s.InRange(3))
	assert.False(t, s.InRange(4))
}

func TestResetPage(t *testing.T) {
	s := State{Total: 41, Pages: 3, CurrentPage: 3, Limit: 20}
	reset := s.ResetPage()
	assert.Equal(t, 1, reset.CurrentPage)
	assert.Equal(t, 20, reset.Limit)
	assert.Equal(t, 3, s.CurrentPage, "receiver is a value, original unchanged")
}
