package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := map[string]bool{}
	for _, v := range ids {
		assert.Len(t, v, 26)
		assert.False(t, seen[v], "duplicate %s", v)
		seen[v] = true
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC)
	got, err := Time(At(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "got %s", got)
}

func TestTimeRejectsForeignIDs(t *testing.T) {
	_, err := Time("not-a-request-id")
	assert.Error(t, err)
}
