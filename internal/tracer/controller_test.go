package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkyk0317/godbg/internal/procmap"
)

func TestFindRegionExactPathMatch(t *testing.T) {
	regions := map[string][]procmap.Region{
		"/usr/bin/app": {{StartHex: "555555554000", EndHex: "555555555000", Permissions: "r-xp"}},
		"none":         {{StartHex: "7ffff0000000", EndHex: "7ffff0001000", Permissions: "rw-p"}},
	}

	r, ok := findRegion(regions, "/usr/bin/app")
	require.True(t, ok)
	assert.Equal(t, "555555554000", r.StartHex)
}

func TestFindRegionFallsBackToBasename(t *testing.T) {
	regions := map[string][]procmap.Region{
		"/some/other/mount/app": {{StartHex: "555555554000", EndHex: "555555555000", Permissions: "r-xp"}},
	}

	r, ok := findRegion(regions, "/usr/bin/app")
	require.True(t, ok)
	assert.Equal(t, "555555554000", r.StartHex)
}

func TestFindRegionNoMatch(t *testing.T) {
	regions := map[string][]procmap.Region{
		"/usr/bin/other": {{StartHex: "1000", EndHex: "2000", Permissions: "r-xp"}},
	}

	_, ok := findRegion(regions, "/usr/bin/app")
	assert.False(t, ok)
}
