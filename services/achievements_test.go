package services

import (
	"fmt"
	"testing"

	"event-log-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findProgress(t *testing.T, results []AchievementProgress, code string) AchievementProgress {
	t.Helper()
	for _, p := range results {
		if p.Definition.Code == code {
			return p
		}
	}
	t.Fatalf("achievement %s not in results", code)
	return AchievementProgress{}
}

func TestEvaluateProgressBeforeThreshold(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	for i := 0; i < 9; i++ {
		seedTennis(t, events, "u1", onDay(2025, 3, i+1), "X", "Y", "")
	}

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)
	require.Len(t, results, len(models.AchievementCatalog))

	p := findProgress(t, results, "GETTING_STARTED")
	assert.False(t, p.Unlocked)
	assert.Nil(t, p.UnlockedAt)
	assert.EqualValues(t, 9, p.Current)
	assert.EqualValues(t, 10, p.Target)
	assert.Equal(t, 90, p.Percentage)

	for _, p := range results {
		assert.GreaterOrEqual(t, p.Percentage, 0, p.Definition.Code)
		assert.LessOrEqual(t, p.Percentage, 100, p.Definition.Code)
	}
}

func TestEvaluateUnlocksAtThresholdWithTrigger(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	for i := 0; i < 9; i++ {
		seedTennis(t, events, "u1", onDay(2025, 3, i+1), "X", "Y", "")
	}
	tenth := seedTennis(t, events, "u1", onDay(2025, 3, 10), "X", "Y", "")

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	p := findProgress(t, results, "GETTING_STARTED")
	assert.True(t, p.Unlocked)
	require.NotNil(t, p.UnlockedAt)
	require.NotNil(t, p.TriggerEventID)
	assert.Equal(t, tenth.ID, *p.TriggerEventID)
	assert.Equal(t, 100, p.Percentage)
}

func TestEvaluateUnlockIsPermanent(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	for i := 0; i < 10; i++ {
		seedTennis(t, events, "u1", onDay(2025, 3, i+1), "X", "Y", "")
	}
	results, err := svc.Evaluate("u1")
	require.NoError(t, err)
	first := findProgress(t, results, "GETTING_STARTED")
	require.True(t, first.Unlocked)

	// an eleventh event must not re-unlock or touch the record
	seedTennis(t, events, "u1", onDay(2025, 3, 11), "X", "Y", "")
	results, err = svc.Evaluate("u1")
	require.NoError(t, err)
	second := findProgress(t, results, "GETTING_STARTED")
	assert.True(t, second.Unlocked)
	assert.True(t, second.UnlockedAt.Equal(*first.UnlockedAt))
	assert.Equal(t, *first.TriggerEventID, *second.TriggerEventID)
	assert.EqualValues(t, 11, second.Current)

	var count int64
	require.NoError(t, db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_code = ?", "u1", "GETTING_STARTED").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnlockDuplicateReturnsStoredRecord(t *testing.T) {
	svc := NewAchievementService(newTestDB(t))

	trigger := "evt-1"
	first, err := svc.unlock("u1", "FIRST_TICKET", &trigger)
	require.NoError(t, err)

	other := "evt-2"
	second, err := svc.unlock("u1", "FIRST_TICKET", &other)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "evt-1", *second.TriggerEventID)
}

func TestEvaluateSportScopedAchievements(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	gig := seedConcert(t, events, "u1", onDay(2025, 6, 1), nil, "Artist X", "Song")

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	p := findProgress(t, results, "FIRST_GIG")
	assert.True(t, p.Unlocked)
	require.NotNil(t, p.TriggerEventID)
	assert.Equal(t, gig.ID, *p.TriggerEventID)

	// the soccer tier saw nothing
	soccer := findProgress(t, results, "PITCH_SIDE")
	assert.False(t, soccer.Unlocked)
	assert.EqualValues(t, 0, soccer.Current)
}

func TestEvaluateSameArtistAndSongs(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	for i := 0; i < 3; i++ {
		seedConcert(t, events, "u1", onDay(2025, 6, i+1), nil, "Artist X", "One", "Two")
	}

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	fan := findProgress(t, results, "FAN")
	assert.True(t, fan.Unlocked)
	assert.EqualValues(t, 3, fan.Current)

	songs := findProgress(t, results, "HUNDRED_SONGS")
	assert.False(t, songs.Unlocked)
	assert.EqualValues(t, 6, songs.Current)
	assert.Equal(t, 6, songs.Percentage)
}

func TestEvaluateCountriesAndVenueRepeat(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	home := &VenueInput{Name: "Home Ground", Country: "England"}
	for i := 0; i < 5; i++ {
		seedSoccer(t, events, "u1", onDay(2025, 3, i+1), home, "A", "B", nil, nil)
	}
	seedSoccer(t, events, "u1", onDay(2025, 4, 1), &VenueInput{Name: "Abroad", Country: "spain"}, "A", "B", nil, nil)
	seedSoccer(t, events, "u1", onDay(2025, 4, 2), &VenueInput{Name: "Also Abroad", Country: "SPAIN"}, "A", "B", nil, nil)

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	turf := findProgress(t, results, "HOME_TURF")
	assert.True(t, turf.Unlocked)
	assert.EqualValues(t, 5, turf.Current)

	// country names fold, spain == SPAIN
	border := findProgress(t, results, "BORDER_CROSSER")
	assert.True(t, border.Unlocked)
	assert.EqualValues(t, 2, border.Current)
}

func TestEvaluateSameDayAndMonthStreak(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	// two events on one calendar day
	seedTennis(t, events, "u1", onDay(2025, 3, 1), "X", "Y", "")
	seedConcert(t, events, "u1", onDay(2025, 3, 1), nil, "Artist X", "Song")
	// gap, then a separate two-month run; the streak stays at 2
	seedTennis(t, events, "u1", onDay(2025, 6, 1), "X", "Y", "")
	seedTennis(t, events, "u1", onDay(2025, 7, 1), "X", "Y", "")

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	day := findProgress(t, results, "DOUBLE_HEADER")
	assert.True(t, day.Unlocked)
	assert.EqualValues(t, 2, day.Current)

	streak := findProgress(t, results, "QUARTERLY")
	assert.False(t, streak.Unlocked)
	assert.EqualValues(t, 2, streak.Current)

	// December to January crosses the year boundary and still chains
	seedTennis(t, events, "u1", onDay(2025, 12, 5), "X", "Y", "")
	seedTennis(t, events, "u1", onDay(2026, 1, 5), "X", "Y", "")
	seedTennis(t, events, "u1", onDay(2026, 2, 5), "X", "Y", "")

	results, err = svc.Evaluate("u1")
	require.NoError(t, err)
	streak = findProgress(t, results, "QUARTERLY")
	assert.True(t, streak.Unlocked)
	assert.EqualValues(t, 3, streak.Current)
}

func TestEvaluateWitnessedScoresAndCleanSheets(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	seedSoccer(t, events, "u1", onDay(2025, 3, 1), nil, "A", "B", intp(4), intp(0))
	seedSoccer(t, events, "u1", onDay(2025, 3, 2), nil, "A", "B", intp(3), intp(3))
	// unknown scores contribute nothing
	seedSoccer(t, events, "u1", onDay(2025, 3, 3), nil, "A", "B", nil, nil)
	seedBasketball(t, events, "u1", onDay(2025, 3, 4), "H", "V", intp(101), intp(99))

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	goals := findProgress(t, results, "GOAL_RUSH")
	assert.True(t, goals.Unlocked)
	assert.EqualValues(t, 10, goals.Current)

	points := findProgress(t, results, "POINT_HOARDER")
	assert.EqualValues(t, 200, points.Current)

	// only the 4-0 match has a side kept at zero
	sheets := findProgress(t, results, "SHUTOUT_SPOTTER")
	assert.EqualValues(t, 1, sheets.Current)
}

func TestEvaluateRatedEvents(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	for i := 0; i < 10; i++ {
		e := seedTennis(t, events, "u1", onDay(2025, 3, i+1), "X", "Y", "")
		_, err := events.UpdateEvent("u1", e.ID, UpdateEventInput{Rating: intp(5)})
		require.NoError(t, err)
	}
	seedTennis(t, events, "u1", onDay(2025, 3, 20), "X", "Y", "")

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)
	critic := findProgress(t, results, "CRITIC")
	assert.True(t, critic.Unlocked)
	assert.EqualValues(t, 10, critic.Current)
}

func TestEvaluateUnregisteredCriteriaReportsZero(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	seedTennis(t, events, "u1", onDay(2025, 3, 1), "X", "Y", "")

	original := models.AchievementCatalog
	models.AchievementCatalog = append(append([]models.AchievementDefinition{}, original...),
		models.AchievementDefinition{
			Code: "MYSTERY", Name: "Mystery", Rarity: "common",
			Criteria: models.CriteriaType("not_a_thing"), Threshold: 1,
		})
	defer func() { models.AchievementCatalog = original }()

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)

	p := findProgress(t, results, "MYSTERY")
	assert.False(t, p.Unlocked)
	assert.EqualValues(t, 0, p.Current)
	assert.Equal(t, 0, p.Percentage)
}

func TestEvaluateIgnoresDeletedEvents(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAchievementService(db)

	e := seedTennis(t, events, "u1", onDay(2025, 3, 1), "X", "Y", "")
	require.NoError(t, events.DeleteEvent("u1", e.ID))

	results, err := svc.Evaluate("u1")
	require.NoError(t, err)
	p := findProgress(t, results, "FIRST_TICKET")
	assert.False(t, p.Unlocked)
	assert.EqualValues(t, 0, p.Current)
}

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		current, target int64
		want            int
	}{
		{0, 10, 0},
		{9, 10, 90},
		{10, 10, 100},
		{15, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{5, 0, 100},
	}
	for _, c := range cases {
		got := progressPercentage(c.current, c.target)
		assert.Equal(t, c.want, got, fmt.Sprintf("%d/%d", c.current, c.target))
	}
}
