package freeze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveAt(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	f := UserFreeze{StartAt: start, EndAt: end}

	assert.True(t, f.ActiveAt(start), "start bound is inclusive")
	assert.True(t, f.ActiveAt(end), "end bound is inclusive")
	assert.False(t, f.ActiveAt(start.Add(-time.Second)))
	assert.False(t, f.ActiveAt(end.Add(time.Second)))

	canceledAt := start.Add(time.Hour)
	f.CanceledAt = &canceledAt
	assert.False(t, f.ActiveAt(start.Add(2*time.Hour)), "canceled freezes never gate")
}
