package services

import (
	"fmt"
	"testing"
	"time"

	"event-log-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database and migrates the
// full schema. The named DSN keeps the database alive across pooled
// connections within one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Venue{},
		&models.Player{},
		&models.Artist{},
		&models.Event{},
		&models.SoccerMatch{},
		&models.BasketballGame{},
		&models.BaseballGame{},
		&models.TennisMatch{},
		&models.Concert{},
		&models.SetlistItem{},
		&models.SoccerAppearance{},
		&models.BasketballAppearance{},
		&models.BaseballAppearance{},
		&models.UserAchievement{},
	))
	return db
}

func intp(v int) *int { return &v }

func onDay(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 19, 30, 0, 0, time.UTC)
}

// seedSoccer logs a soccer match for the user with optional appearances.
func seedSoccer(t *testing.T, svc *EventService, userID string, day time.Time, venue *VenueInput, home, away string, homeScore, awayScore *int, apps ...SoccerAppearanceInput) *models.Event {
	t.Helper()
	event, err := svc.CreateEvent(userID, CreateEventInput{
		SportType: models.SportSoccer,
		Date:      day,
		Venue:     venue,
		Soccer: &SoccerMatchInput{
			HomeTeam:    home,
			AwayTeam:    away,
			HomeScore:   homeScore,
			AwayScore:   awayScore,
			Appearances: apps,
		},
	})
	require.NoError(t, err)
	return event
}

func seedBasketball(t *testing.T, svc *EventService, userID string, day time.Time, home, away string, homePoints, awayPoints *int, apps ...BasketballAppearanceInput) *models.Event {
	t.Helper()
	event, err := svc.CreateEvent(userID, CreateEventInput{
		SportType: models.SportBasketball,
		Date:      day,
		Basketball: &BasketballGameInput{
			HomeTeam:    home,
			AwayTeam:    away,
			HomePoints:  homePoints,
			AwayPoints:  awayPoints,
			Appearances: apps,
		},
	})
	require.NoError(t, err)
	return event
}

func seedConcert(t *testing.T, svc *EventService, userID string, day time.Time, venue *VenueInput, artist string, songs ...string) *models.Event {
	t.Helper()
	setlist := make([]SetlistItemInput, 0, len(songs))
	for _, s := range songs {
		setlist = append(setlist, SetlistItemInput{SongName: s})
	}
	event, err := svc.CreateEvent(userID, CreateEventInput{
		SportType: models.SportConcert,
		Date:      day,
		Venue:     venue,
		Concert: &ConcertInput{
			ArtistName: artist,
			Setlist:    setlist,
		},
	})
	require.NoError(t, err)
	return event
}

func seedTennis(t *testing.T, svc *EventService, userID string, day time.Time, p1, p2, scoreLine string) *models.Event {
	t.Helper()
	event, err := svc.CreateEvent(userID, CreateEventInput{
		SportType: models.SportTennis,
		Date:      day,
		Tennis: &TennisMatchInput{
			PlayerOne: p1,
			PlayerTwo: p2,
			ScoreLine: scoreLine,
		},
	})
	require.NoError(t, err)
	return event
}
