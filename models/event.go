package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SportType tags an Event with the kind of sub-record it owns.
type SportType string

const (
	SportSoccer     SportType = "soccer"
	SportBasketball SportType = "basketball"
	SportBaseball   SportType = "baseball"
	SportTennis     SportType = "tennis"
	SportConcert    SportType = "concert"
)

var AllSportTypes = []SportType{
	SportSoccer, SportBasketball, SportBaseball, SportTennis, SportConcert,
}

// TeamSports are the sports whose sub-records carry two team names and a score pair.
var TeamSports = []SportType{SportSoccer, SportBasketball, SportBaseball}

func (s SportType) Valid() bool {
	switch s {
	case SportSoccer, SportBasketball, SportBaseball, SportTennis, SportConcert:
		return true
	}
	return false
}

func (s SportType) IsTeamSport() bool {
	return s == SportSoccer || s == SportBasketball || s == SportBaseball
}

// Event is one attendance record. Exactly one of the five sub-record
// pointers is set, selected by SportType — the constructor path in
// services.EventService enforces this before anything is persisted.
type Event struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	SportType  SportType `gorm:"type:varchar(16);index;not null" json:"sport_type"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	VenueID    *string   `gorm:"index" json:"venue_id,omitempty"`
	Venue      *Venue    `json:"venue,omitempty"`
	Rating     *int      `gorm:"check:rating BETWEEN 1 AND 5" json:"rating,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	Companions []string  `gorm:"serializer:json" json:"companions,omitempty"`
	PhotoURL   string    `gorm:"type:text" json:"photo_url,omitempty"`

	SoccerMatch    *SoccerMatch    `gorm:"constraint:OnDelete:CASCADE" json:"soccer_match,omitempty"`
	BasketballGame *BasketballGame `gorm:"constraint:OnDelete:CASCADE" json:"basketball_game,omitempty"`
	BaseballGame   *BaseballGame   `gorm:"constraint:OnDelete:CASCADE" json:"baseball_game,omitempty"`
	TennisMatch    *TennisMatch    `gorm:"constraint:OnDelete:CASCADE" json:"tennis_match,omitempty"`
	Concert        *Concert        `gorm:"constraint:OnDelete:CASCADE" json:"concert,omitempty"`

	Timestamps
}

// Validate checks the tagged-union invariant: a known sport type and
// exactly the matching sub-record present, the other four absent.
func (e *Event) Validate() error {
	if !e.SportType.Valid() {
		return fmt.Errorf("unknown sport type %q", e.SportType)
	}
	set := 0
	var match SportType
	if e.SoccerMatch != nil {
		set++
		match = SportSoccer
	}
	if e.BasketballGame != nil {
		set++
		match = SportBasketball
	}
	if e.BaseballGame != nil {
		set++
		match = SportBaseball
	}
	if e.TennisMatch != nil {
		set++
		match = SportTennis
	}
	if e.Concert != nil {
		set++
		match = SportConcert
	}
	if set != 1 {
		return fmt.Errorf("event must carry exactly one sub-record, got %d", set)
	}
	if match != e.SportType {
		return fmt.Errorf("sub-record %q does not match sport type %q", match, e.SportType)
	}
	if e.Rating != nil && (*e.Rating < 1 || *e.Rating > 5) {
		return fmt.Errorf("rating must be 1-5, got %d", *e.Rating)
	}
	return nil
}

// SoccerMatch is the soccer sub-record. Scores are nullable: a nil score
// means "unknown", not zero.
type SoccerMatch struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID     string `gorm:"uniqueIndex;not null" json:"event_id"`
	HomeTeam    string `gorm:"not null" json:"home_team"`
	AwayTeam    string `gorm:"not null" json:"away_team"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
	Competition string `json:"competition,omitempty"`

	Appearances []SoccerAppearance `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"appearances,omitempty"`
}

type BasketballGame struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID    string `gorm:"uniqueIndex;not null" json:"event_id"`
	HomeTeam   string `gorm:"not null" json:"home_team"`
	AwayTeam   string `gorm:"not null" json:"away_team"`
	HomePoints *int   `json:"home_points,omitempty"`
	AwayPoints *int   `json:"away_points,omitempty"`

	Appearances []BasketballAppearance `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"appearances,omitempty"`
}

type BaseballGame struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID   string `gorm:"uniqueIndex;not null" json:"event_id"`
	HomeTeam  string `gorm:"not null" json:"home_team"`
	AwayTeam  string `gorm:"not null" json:"away_team"`
	HomeScore *int   `json:"home_score,omitempty"` // final run tally
	AwayScore *int   `json:"away_score,omitempty"`

	Appearances []BaseballAppearance `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"appearances,omitempty"`
}

// TennisMatch keeps the score as the free-text line users enter
// ("6-4 3-6 7-6"), it is never parsed for aggregation.
type TennisMatch struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID   string `gorm:"uniqueIndex;not null" json:"event_id"`
	PlayerOne string `gorm:"not null" json:"player_one"`
	PlayerTwo string `gorm:"not null" json:"player_two"`
	ScoreLine string `json:"score_line,omitempty"`
	Surface   string `gorm:"type:varchar(16)" json:"surface,omitempty"`
}

type Concert struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	EventID  string  `gorm:"uniqueIndex;not null" json:"event_id"`
	ArtistID string  `gorm:"index;not null" json:"artist_id"`
	Artist   *Artist `json:"artist,omitempty"`
	TourName string  `json:"tour_name,omitempty"`

	Setlist []SetlistItem `gorm:"foreignKey:ConcertID;constraint:OnDelete:CASCADE" json:"setlist,omitempty"`
}

// SetlistItem is one song in a concert's running order. Position is a
// dense 1..N sequence unique within the concert.
type SetlistItem struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ConcertID string `gorm:"uniqueIndex:idx_setlist_position;not null" json:"concert_id"`
	Position  int    `gorm:"uniqueIndex:idx_setlist_position;not null" json:"position"`
	SongName  string `gorm:"not null" json:"song_name"`
	Encore    bool   `gorm:"default:false" json:"encore"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
