package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestVersionNumberClone verifies that Clone copies every field and handles nil safely.
func TestVersionNumberClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*VersionNumber)(nil).Clone())

	v := &VersionNumber{
		Major:          1,
		Minor:          1,
		Patch:          2,
		VCSHash:        "0C321F25",
		Suffix:         "-beta1",
		BuildTimestamp: time.Date(2023, 2, 23, 9, 43, 21, 0, time.UTC),
	}

	c := v.Clone()
	require.Equal(t, v, c)
	require.NotSame(t, v, c)
}

// TestVersionNumberComponents checks the most-significant-first ordering.
func TestVersionNumberComponents(t *testing.T) {
	t.Parallel()

	v := VersionNumber{Major: 4, Minor: 3, Patch: 2, Build: 1}
	require.Equal(t, [4]int{4, 3, 2, 1}, v.Components())
}
