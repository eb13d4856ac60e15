package models

import (
	"time"
)

// CriteriaType selects which statistic computation measures an
// achievement's progress. New types are added by registering a function
// in services/achievements.go; definitions with an unregistered type
// report zero progress instead of failing evaluation.
type CriteriaType string

const (
	CriteriaTotalEvents       CriteriaType = "total_events"
	CriteriaSportEvents       CriteriaType = "sport_events" // scoped by Sport
	CriteriaDistinctVenues    CriteriaType = "distinct_venues"
	CriteriaDistinctCountries CriteriaType = "distinct_countries"
	CriteriaDistinctArtists   CriteriaType = "distinct_artists"
	CriteriaSameArtistRepeat  CriteriaType = "same_artist_repeat"
	CriteriaSameVenueRepeat   CriteriaType = "same_venue_repeat"
	CriteriaEventsSameDay     CriteriaType = "events_same_day"
	CriteriaMonthStreak       CriteriaType = "consecutive_month_streak"
	CriteriaGoalsWitnessed    CriteriaType = "goals_witnessed"
	CriteriaPointsWitnessed   CriteriaType = "points_witnessed"
	CriteriaSongsHeard        CriteriaType = "songs_heard"
	CriteriaCleanSheets       CriteriaType = "clean_sheets_witnessed"
	CriteriaRatedEvents       CriteriaType = "rated_events"
)

// AchievementDefinition: static catalog entry, not user-owned, never
// stored in the DB.
type AchievementDefinition struct {
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Rarity      string       `json:"rarity"` // common, rare, epic, legendary
	Criteria    CriteriaType `json:"criteria"`
	Threshold   int64        `json:"threshold"`
	Sport       *SportType   `json:"sport,omitempty"` // scope for sport_events
}

// UserAchievement: unlock record, created exactly once per
// (user, achievement) — the composite unique index backs the
// exactly-once guarantee under concurrent evaluation.
type UserAchievement struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string    `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementCode string    `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_code"`
	UnlockedAt      time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
	TriggerEventID  *string   `gorm:"index" json:"trigger_event_id,omitempty"`
}

func sport(s SportType) *SportType { return &s }

// AchievementCatalog is the fixed definition set evaluated for every
// user. Codes are stable; renaming display fields is safe, codes are not.
var AchievementCatalog = []AchievementDefinition{
	// attendance volume
	{Code: "FIRST_TICKET", Name: "First Ticket", Description: "Log your first event", Rarity: "common", Criteria: CriteriaTotalEvents, Threshold: 1},
	{Code: "GETTING_STARTED", Name: "Getting Started", Description: "Attend 10 events", Rarity: "common", Criteria: CriteriaTotalEvents, Threshold: 10},
	{Code: "REGULAR", Name: "Regular", Description: "Attend 25 events", Rarity: "common", Criteria: CriteriaTotalEvents, Threshold: 25},
	{Code: "SEASON_VETERAN", Name: "Season Veteran", Description: "Attend 50 events", Rarity: "rare", Criteria: CriteriaTotalEvents, Threshold: 50},
	{Code: "CENTURION", Name: "Centurion", Description: "Attend 100 events", Rarity: "epic", Criteria: CriteriaTotalEvents, Threshold: 100},
	{Code: "DIE_HARD", Name: "Die Hard", Description: "Attend 250 events", Rarity: "legendary", Criteria: CriteriaTotalEvents, Threshold: 250},

	// per-sport volume
	{Code: "PITCH_SIDE", Name: "Pitch Side", Description: "Attend 5 soccer matches", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 5, Sport: sport(SportSoccer)},
	{Code: "TERRACE_REGULAR", Name: "Terrace Regular", Description: "Attend 25 soccer matches", Rarity: "rare", Criteria: CriteriaSportEvents, Threshold: 25, Sport: sport(SportSoccer)},
	{Code: "ULTRA", Name: "Ultra", Description: "Attend 50 soccer matches", Rarity: "epic", Criteria: CriteriaSportEvents, Threshold: 50, Sport: sport(SportSoccer)},
	{Code: "COURTSIDE", Name: "Courtside", Description: "Attend 5 basketball games", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 5, Sport: sport(SportBasketball)},
	{Code: "SIXTH_MAN", Name: "Sixth Man", Description: "Attend 25 basketball games", Rarity: "rare", Criteria: CriteriaSportEvents, Threshold: 25, Sport: sport(SportBasketball)},
	{Code: "BLEACHER_DAYS", Name: "Bleacher Days", Description: "Attend 5 baseball games", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 5, Sport: sport(SportBaseball)},
	{Code: "BALLPARK_REGULAR", Name: "Ballpark Regular", Description: "Attend 25 baseball games", Rarity: "rare", Criteria: CriteriaSportEvents, Threshold: 25, Sport: sport(SportBaseball)},
	{Code: "BASELINE_JUDGE", Name: "Baseline Judge", Description: "Attend 5 tennis matches", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 5, Sport: sport(SportTennis)},
	{Code: "GRAND_STAND", Name: "Grand Stand", Description: "Attend 25 tennis matches", Rarity: "rare", Criteria: CriteriaSportEvents, Threshold: 25, Sport: sport(SportTennis)},
	{Code: "FIRST_GIG", Name: "First Gig", Description: "Attend your first concert", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 1, Sport: sport(SportConcert)},
	{Code: "GIG_GOER", Name: "Gig Goer", Description: "Attend 10 concerts", Rarity: "common", Criteria: CriteriaSportEvents, Threshold: 10, Sport: sport(SportConcert)},
	{Code: "FRONT_ROW", Name: "Front Row", Description: "Attend 25 concerts", Rarity: "rare", Criteria: CriteriaSportEvents, Threshold: 25, Sport: sport(SportConcert)},
	{Code: "TOUR_FOLLOWER", Name: "Tour Follower", Description: "Attend 50 concerts", Rarity: "epic", Criteria: CriteriaSportEvents, Threshold: 50, Sport: sport(SportConcert)},

	// places
	{Code: "GROUNDHOPPER", Name: "Groundhopper", Description: "Visit 5 different venues", Rarity: "common", Criteria: CriteriaDistinctVenues, Threshold: 5},
	{Code: "VENUE_COLLECTOR", Name: "Venue Collector", Description: "Visit 10 different venues", Rarity: "rare", Criteria: CriteriaDistinctVenues, Threshold: 10},
	{Code: "CARTOGRAPHER", Name: "Cartographer", Description: "Visit 25 different venues", Rarity: "epic", Criteria: CriteriaDistinctVenues, Threshold: 25},
	{Code: "BORDER_CROSSER", Name: "Border Crosser", Description: "Attend events in 2 countries", Rarity: "rare", Criteria: CriteriaDistinctCountries, Threshold: 2},
	{Code: "GLOBETROTTER", Name: "Globetrotter", Description: "Attend events in 5 countries", Rarity: "epic", Criteria: CriteriaDistinctCountries, Threshold: 5},
	{Code: "HOME_TURF", Name: "Home Turf", Description: "Attend 5 events at the same venue", Rarity: "common", Criteria: CriteriaSameVenueRepeat, Threshold: 5},
	{Code: "SEASON_TICKET", Name: "Season Ticket", Description: "Attend 10 events at the same venue", Rarity: "rare", Criteria: CriteriaSameVenueRepeat, Threshold: 10},

	// music
	{Code: "ECLECTIC_EARS", Name: "Eclectic Ears", Description: "See 10 different artists live", Rarity: "rare", Criteria: CriteriaDistinctArtists, Threshold: 10},
	{Code: "FAN", Name: "Fan", Description: "See the same artist 3 times", Rarity: "common", Criteria: CriteriaSameArtistRepeat, Threshold: 3},
	{Code: "SUPERFAN", Name: "Superfan", Description: "See the same artist 5 times", Rarity: "rare", Criteria: CriteriaSameArtistRepeat, Threshold: 5},
	{Code: "GROUPIE", Name: "Groupie", Description: "See the same artist 10 times", Rarity: "legendary", Criteria: CriteriaSameArtistRepeat, Threshold: 10},
	{Code: "HUNDRED_SONGS", Name: "Hundred Songs", Description: "Hear 100 live songs", Rarity: "common", Criteria: CriteriaSongsHeard, Threshold: 100},
	{Code: "HUMAN_JUKEBOX", Name: "Human Jukebox", Description: "Hear 500 live songs", Rarity: "epic", Criteria: CriteriaSongsHeard, Threshold: 500},

	// dedication
	{Code: "DOUBLE_HEADER", Name: "Double Header", Description: "Attend 2 events on the same day", Rarity: "rare", Criteria: CriteriaEventsSameDay, Threshold: 2},
	{Code: "QUARTERLY", Name: "Quarterly", Description: "Attend events in 3 consecutive months", Rarity: "common", Criteria: CriteriaMonthStreak, Threshold: 3},
	{Code: "HALF_YEAR_HABIT", Name: "Half-Year Habit", Description: "Attend events in 6 consecutive months", Rarity: "rare", Criteria: CriteriaMonthStreak, Threshold: 6},
	{Code: "FULL_CALENDAR", Name: "Full Calendar", Description: "Attend events in 12 consecutive months", Rarity: "legendary", Criteria: CriteriaMonthStreak, Threshold: 12},

	// witnessed stats
	{Code: "GOAL_RUSH", Name: "Goal Rush", Description: "Witness 10 goals", Rarity: "common", Criteria: CriteriaGoalsWitnessed, Threshold: 10},
	{Code: "GOAL_GLUTTON", Name: "Goal Glutton", Description: "Witness 50 goals", Rarity: "rare", Criteria: CriteriaGoalsWitnessed, Threshold: 50},
	{Code: "POINT_HOARDER", Name: "Point Hoarder", Description: "Witness 500 basketball points", Rarity: "rare", Criteria: CriteriaPointsWitnessed, Threshold: 500},
	{Code: "SHUTOUT_SPOTTER", Name: "Shutout Spotter", Description: "Witness 5 clean sheets", Rarity: "rare", Criteria: CriteriaCleanSheets, Threshold: 5},

	// curation
	{Code: "CRITIC", Name: "Critic", Description: "Rate 10 events", Rarity: "common", Criteria: CriteriaRatedEvents, Threshold: 10},
}
