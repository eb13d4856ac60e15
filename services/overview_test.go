package services

import (
	"testing"

	"event-log-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverviewStats(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	venue := &VenueInput{Name: "Arena"}
	seedSoccer(t, events, "u1", onDay(2025, 3, 1), venue, "A", "B", intp(2), intp(1),
		SoccerAppearanceInput{PlayerName: "J. Smith", Goals: intp(2), Assists: intp(1)},
	)
	seedBasketball(t, events, "u1", onDay(2025, 3, 2), "H", "V", intp(100), intp(90),
		BasketballAppearanceInput{PlayerName: "K. Jones", Points: intp(25), Rebounds: intp(10)},
	)
	seedConcert(t, events, "u1", onDay(2025, 6, 1), venue, "Artist X", "One", "Two", "Three")
	seedTennis(t, events, "u1", onDay(2025, 7, 1), "X", "Y", "6-4 6-4")

	out, err := stats.GetOverviewStats("u1", nil)
	require.NoError(t, err)

	assert.EqualValues(t, 4, out.TotalEvents)
	assert.EqualValues(t, 1, out.EventsByType[models.SportSoccer])
	assert.EqualValues(t, 1, out.EventsByType[models.SportBasketball])
	assert.EqualValues(t, 1, out.EventsByType[models.SportConcert])
	assert.EqualValues(t, 1, out.EventsByType[models.SportTennis])
	// both venue-bearing events share one venue
	assert.EqualValues(t, 1, out.UniqueVenues)
	assert.EqualValues(t, 2, out.UniquePlayersWitnessed)

	assert.EqualValues(t, 2, out.AggregateStats[models.SportSoccer]["goals"])
	assert.EqualValues(t, 1, out.AggregateStats[models.SportSoccer]["assists"])
	assert.EqualValues(t, 25, out.AggregateStats[models.SportBasketball]["points"])
	assert.EqualValues(t, 10, out.AggregateStats[models.SportBasketball]["rebounds"])
	assert.EqualValues(t, 3, out.AggregateStats[models.SportConcert]["songs_heard"])
	// baseball section present even with no events logged
	assert.EqualValues(t, 0, out.AggregateStats[models.SportBaseball]["home_runs"])
}

func TestGetOverviewStatsPlayerUnion(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	// the same player across two matches counts once
	seedSoccer(t, events, "u1", onDay(2025, 3, 1), nil, "A", "B", nil, nil,
		SoccerAppearanceInput{PlayerName: "J. Smith", Goals: intp(1)},
	)
	seedSoccer(t, events, "u1", onDay(2025, 3, 8), nil, "A", "C", nil, nil,
		SoccerAppearanceInput{PlayerName: "J. Smith", Goals: intp(1)},
		SoccerAppearanceInput{PlayerName: "P. Lee"},
	)

	out, err := stats.GetOverviewStats("u1", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.UniquePlayersWitnessed)
	assert.EqualValues(t, 2, out.AggregateStats[models.SportSoccer]["goals"])
}

func TestGetOverviewStatsEmpty(t *testing.T) {
	stats := NewStatsService(newTestDB(t))

	out, err := stats.GetOverviewStats("u1", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.TotalEvents)
	assert.EqualValues(t, 0, out.UniqueVenues)
	assert.EqualValues(t, 0, out.UniquePlayersWitnessed)
	assert.Empty(t, out.EventsByType)
}

func TestGetOverviewStatsYearFilter(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	stats := NewStatsService(db)

	seedConcert(t, events, "u1", onDay(2024, 11, 1), nil, "Artist X", "Old")
	seedConcert(t, events, "u1", onDay(2025, 2, 1), nil, "Artist X", "New", "Newer")

	year := 2025
	out, err := stats.GetOverviewStats("u1", &year)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.TotalEvents)
	assert.EqualValues(t, 2, out.AggregateStats[models.SportConcert]["songs_heard"])
}
