package services

import (
	"testing"

	"event-log-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVenueStatsGroupsMixedEventTypes(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	venue := &VenueInput{Name: "Big Arena", City: "Berlin", Country: "Germany"}
	seedSoccer(t, events, "u1", onDay(2025, 3, 1), venue, "A", "B", intp(2), intp(1))
	seedConcert(t, events, "u1", onDay(2025, 6, 1), venue, "Artist X", "Song")
	// no venue on this one, it never shows up
	seedTennis(t, events, "u1", onDay(2025, 7, 1), "X", "Y", "")

	entries, err := stats.GetVenueStats("u1", nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Big Arena", e.VenueName)
	assert.Equal(t, "Berlin", e.City)
	assert.Equal(t, "Germany", e.Country)
	assert.Equal(t, 2, e.TotalEvents)
	assert.Equal(t, 1, e.EventTypes[models.SportSoccer])
	assert.Equal(t, 1, e.EventTypes[models.SportConcert])
	// only the soccer match carries an outcome
	assert.Equal(t, 1, e.Wins)
	assert.Equal(t, 0, e.Losses)
	assert.Equal(t, 0, e.Draws)
}

func TestGetVenueStatsHomeSideOutcomes(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	venue := &VenueInput{Name: "Stadium"}
	seedSoccer(t, events, "u1", onDay(2025, 3, 1), venue, "A", "B", intp(2), intp(1))
	seedSoccer(t, events, "u1", onDay(2025, 3, 2), venue, "A", "B", intp(0), intp(3))
	seedSoccer(t, events, "u1", onDay(2025, 3, 3), venue, "A", "B", intp(1), intp(1))

	entries, err := stats.GetVenueStats("u1", nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, 1, e.Wins)
	assert.Equal(t, 1, e.Losses)
	assert.Equal(t, 1, e.Draws)
	assert.Equal(t, 3, e.TotalEvents)
}

func TestGetVenueStatsSortedByTotalEvents(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	busy := &VenueInput{Name: "Busy Hall"}
	quiet := &VenueInput{Name: "Quiet Club"}
	seedConcert(t, events, "u1", onDay(2025, 6, 1), busy, "Artist X", "Song")
	seedConcert(t, events, "u1", onDay(2025, 6, 2), busy, "Artist Y", "Song")
	seedConcert(t, events, "u1", onDay(2025, 6, 3), quiet, "Artist Z", "Song")

	entries, err := stats.GetVenueStats("u1", nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Busy Hall", entries[0].VenueName)
	assert.Equal(t, "Quiet Club", entries[1].VenueName)
}

func TestGetVenueStatsYearFilter(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	venue := &VenueInput{Name: "Stadium"}
	seedSoccer(t, events, "u1", onDay(2024, 3, 1), venue, "A", "B", intp(1), intp(0))
	seedSoccer(t, events, "u1", onDay(2025, 3, 1), venue, "A", "B", intp(0), intp(1))

	year := 2025
	entries, err := stats.GetVenueStats("u1", &year)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].TotalEvents)
	assert.Equal(t, 0, entries[0].Wins)
	assert.Equal(t, 1, entries[0].Losses)
}
