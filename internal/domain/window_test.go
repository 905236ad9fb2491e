package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

func TestResolveWindow_DefaultsToSevenDaysBack(t *testing.T) {
	window, err := ResolveWindow(WindowRequest{}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, fixedNow, window.End)
}

func TestResolveWindow_DaysBack(t *testing.T) {
	window, err := ResolveWindow(WindowRequest{DaysBack: 3}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 24, 12, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, fixedNow, window.End)
}

func TestResolveWindow_ExplicitBounds(t *testing.T) {
	window, err := ResolveWindow(WindowRequest{
		StartDate: "2026-01-01T00:00:00Z",
		EndDate:   "2026-01-15T00:00:00Z",
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), window.End)
}

func TestResolveWindow_StartWithoutEndUsesNow(t *testing.T) {
	window, err := ResolveWindow(WindowRequest{StartDate: "2026-01-01T00:00:00Z"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, fixedNow, window.End)
}

func TestResolveWindow_EndWithoutStartIsRejected(t *testing.T) {
	_, err := ResolveWindow(WindowRequest{EndDate: "2026-01-15T00:00:00Z"}, fixedNow)
	assert.ErrorContains(t, err, "endDate requires startDate")
}

func TestResolveWindow_StartAfterEndIsRejected(t *testing.T) {
	_, err := ResolveWindow(WindowRequest{
		StartDate: "2026-02-01T00:00:00Z",
		EndDate:   "2026-01-01T00:00:00Z",
	}, fixedNow)
	assert.ErrorContains(t, err, "after endDate")
}

func TestResolveWindow_BadStartDateIsRejected(t *testing.T) {
	_, err := ResolveWindow(WindowRequest{StartDate: "yesterday"}, fixedNow)
	assert.ErrorContains(t, err, "parse startDate")
}

func TestContains_BoundsInclusive(t *testing.T) {
	window := FetchWindow{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.True(t, window.Contains(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(window.Start.Add(-time.Second)))
	assert.False(t, window.Contains(window.End.Add(time.Second)))
}

func TestYears_MostRecentFirst(t *testing.T) {
	window := FetchWindow{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, []int{2026, 2025, 2024}, window.Years(fixedNow))
}

func TestYears_CappedAtCurrentYear(t *testing.T) {
	window := FetchWindow{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, []int{2026, 2025}, window.Years(fixedNow))
}

func TestYears_SingleYear(t *testing.T) {
	window := FetchWindow{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, []int{2026}, window.Years(fixedNow))
}
