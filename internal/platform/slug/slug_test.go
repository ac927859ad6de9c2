package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"liftlog/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "day-1-lower-body-power", slug.Make("Day 1 – Lower Body Power"))
	assert.Equal(t, "pull-ups-or-lat-pulldown", slug.Make("  Pull-Ups (or Lat Pulldown) "))
	assert.Equal(t, "untitled", slug.Make("–––"))

	long := slug.Make(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(long), 48)
	assert.False(t, strings.HasSuffix(long, "-"))
}
