package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"event-log-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

type VenueInput struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type SoccerAppearanceInput struct {
	PlayerName  string `json:"player_name"`
	TeamName    string `json:"team_name"`
	Goals       *int   `json:"goals"`
	Assists     *int   `json:"assists"`
	YellowCards *int   `json:"yellow_cards"`
	RedCards    *int   `json:"red_cards"`
}

type BasketballAppearanceInput struct {
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	Points     *int   `json:"points"`
	Rebounds   *int   `json:"rebounds"`
	Assists    *int   `json:"assists"`
}

type BaseballAppearanceInput struct {
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	HomeRuns   *int   `json:"home_runs"`
	Hits       *int   `json:"hits"`
	RBIs       *int   `json:"rbis"`
}

type SoccerMatchInput struct {
	HomeTeam    string                  `json:"home_team"`
	AwayTeam    string                  `json:"away_team"`
	HomeScore   *int                    `json:"home_score"`
	AwayScore   *int                    `json:"away_score"`
	Competition string                  `json:"competition"`
	Appearances []SoccerAppearanceInput `json:"appearances"`
}

type BasketballGameInput struct {
	HomeTeam    string                      `json:"home_team"`
	AwayTeam    string                      `json:"away_team"`
	HomePoints  *int                        `json:"home_points"`
	AwayPoints  *int                        `json:"away_points"`
	Appearances []BasketballAppearanceInput `json:"appearances"`
}

type BaseballGameInput struct {
	HomeTeam    string                    `json:"home_team"`
	AwayTeam    string                    `json:"away_team"`
	HomeScore   *int                      `json:"home_score"`
	AwayScore   *int                      `json:"away_score"`
	Appearances []BaseballAppearanceInput `json:"appearances"`
}

type TennisMatchInput struct {
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	ScoreLine string `json:"score_line"`
	Surface   string `json:"surface"`
}

type SetlistItemInput struct {
	SongName string `json:"song_name"`
	Encore   bool   `json:"encore"`
}

type ConcertInput struct {
	ArtistName string             `json:"artist_name"`
	TourName   string             `json:"tour_name"`
	Setlist    []SetlistItemInput `json:"setlist"`
}

type CreateEventInput struct {
	SportType  models.SportType `json:"sport_type"`
	Date       time.Time        `json:"date"`
	Venue      *VenueInput      `json:"venue"`
	Rating     *int             `json:"rating"`
	Notes      string           `json:"notes"`
	Companions []string         `json:"companions"`

	Soccer     *SoccerMatchInput    `json:"soccer"`
	Basketball *BasketballGameInput `json:"basketball"`
	Baseball   *BaseballGameInput   `json:"baseball"`
	Tennis     *TennisMatchInput    `json:"tennis"`
	Concert    *ConcertInput        `json:"concert"`
}

func (in *CreateEventInput) validate() error {
	if !in.SportType.Valid() {
		return fmt.Errorf("unknown sport type %q", in.SportType)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return fmt.Errorf("rating must be 1-5, got %d", *in.Rating)
	}
	set := 0
	var match models.SportType
	if in.Soccer != nil {
		set++
		match = models.SportSoccer
	}
	if in.Basketball != nil {
		set++
		match = models.SportBasketball
	}
	if in.Baseball != nil {
		set++
		match = models.SportBaseball
	}
	if in.Tennis != nil {
		set++
		match = models.SportTennis
	}
	if in.Concert != nil {
		set++
		match = models.SportConcert
	}
	if set != 1 {
		return fmt.Errorf("event must carry exactly one sub-record, got %d", set)
	}
	if match != in.SportType {
		return fmt.Errorf("sub-record %q does not match sport type %q", match, in.SportType)
	}
	return nil
}

// CreateEvent persists a new attendance record with its sub-record,
// appearances and setlist in one transaction. Players, artists and
// venues are resolved (created lazily) inside the same transaction.
func (s *EventService) CreateEvent(userID string, input CreateEventInput) (*models.Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:         uuid.NewString(),
		UserID:     userID,
		SportType:  input.SportType,
		Date:       input.Date,
		Rating:     input.Rating,
		Notes:      input.Notes,
		Companions: input.Companions,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		resolver := NewEntityResolver(tx)

		if input.Venue != nil && strings.TrimSpace(input.Venue.Name) != "" {
			venue, err := resolver.ResolveVenue(input.Venue.Name, input.Venue.City, input.Venue.Country)
			if err != nil {
				return err
			}
			event.VenueID = &venue.ID
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		switch input.SportType {
		case models.SportSoccer:
			return s.createSoccerMatch(tx, resolver, event.ID, input.Soccer)
		case models.SportBasketball:
			return s.createBasketballGame(tx, resolver, event.ID, input.Basketball)
		case models.SportBaseball:
			return s.createBaseballGame(tx, resolver, event.ID, input.Baseball)
		case models.SportTennis:
			return s.createTennisMatch(tx, event.ID, input.Tennis)
		case models.SportConcert:
			return s.createConcert(tx, resolver, event.ID, input.Concert)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(userID, event.ID)
}

func (s *EventService) createSoccerMatch(tx *gorm.DB, resolver *EntityResolver, eventID string, in *SoccerMatchInput) error {
	if in.HomeTeam == "" || in.AwayTeam == "" {
		return fmt.Errorf("both team names are required")
	}
	match := models.SoccerMatch{
		ID:          uuid.NewString(),
		EventID:     eventID,
		HomeTeam:    strings.TrimSpace(in.HomeTeam),
		AwayTeam:    strings.TrimSpace(in.AwayTeam),
		HomeScore:   in.HomeScore,
		AwayScore:   in.AwayScore,
		Competition: in.Competition,
	}
	if err := tx.Create(&match).Error; err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for _, a := range in.Appearances {
		player, err := resolver.ResolvePlayer(a.PlayerName, models.SportSoccer)
		if err != nil {
			return err
		}
		if _, dup := seen[player.ID]; dup {
			return fmt.Errorf("duplicate appearance for player %q", player.Name)
		}
		seen[player.ID] = struct{}{}
		row := models.SoccerAppearance{
			ID:          uuid.NewString(),
			MatchID:     match.ID,
			PlayerID:    player.ID,
			TeamName:    strings.TrimSpace(a.TeamName),
			Goals:       a.Goals,
			Assists:     a.Assists,
			YellowCards: a.YellowCards,
			RedCards:    a.RedCards,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) createBasketballGame(tx *gorm.DB, resolver *EntityResolver, eventID string, in *BasketballGameInput) error {
	if in.HomeTeam == "" || in.AwayTeam == "" {
		return fmt.Errorf("both team names are required")
	}
	game := models.BasketballGame{
		ID:         uuid.NewString(),
		EventID:    eventID,
		HomeTeam:   strings.TrimSpace(in.HomeTeam),
		AwayTeam:   strings.TrimSpace(in.AwayTeam),
		HomePoints: in.HomePoints,
		AwayPoints: in.AwayPoints,
	}
	if err := tx.Create(&game).Error; err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for _, a := range in.Appearances {
		player, err := resolver.ResolvePlayer(a.PlayerName, models.SportBasketball)
		if err != nil {
			return err
		}
		if _, dup := seen[player.ID]; dup {
			return fmt.Errorf("duplicate appearance for player %q", player.Name)
		}
		seen[player.ID] = struct{}{}
		row := models.BasketballAppearance{
			ID:       uuid.NewString(),
			GameID:   game.ID,
			PlayerID: player.ID,
			TeamName: strings.TrimSpace(a.TeamName),
			Points:   a.Points,
			Rebounds: a.Rebounds,
			Assists:  a.Assists,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) createBaseballGame(tx *gorm.DB, resolver *EntityResolver, eventID string, in *BaseballGameInput) error {
	if in.HomeTeam == "" || in.AwayTeam == "" {
		return fmt.Errorf("both team names are required")
	}
	game := models.BaseballGame{
		ID:        uuid.NewString(),
		EventID:   eventID,
		HomeTeam:  strings.TrimSpace(in.HomeTeam),
		AwayTeam:  strings.TrimSpace(in.AwayTeam),
		HomeScore: in.HomeScore,
		AwayScore: in.AwayScore,
	}
	if err := tx.Create(&game).Error; err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for _, a := range in.Appearances {
		player, err := resolver.ResolvePlayer(a.PlayerName, models.SportBaseball)
		if err != nil {
			return err
		}
		if _, dup := seen[player.ID]; dup {
			return fmt.Errorf("duplicate appearance for player %q", player.Name)
		}
		seen[player.ID] = struct{}{}
		row := models.BaseballAppearance{
			ID:       uuid.NewString(),
			GameID:   game.ID,
			PlayerID: player.ID,
			TeamName: strings.TrimSpace(a.TeamName),
			HomeRuns: a.HomeRuns,
			Hits:     a.Hits,
			RBIs:     a.RBIs,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) createTennisMatch(tx *gorm.DB, eventID string, in *TennisMatchInput) error {
	if in.PlayerOne == "" || in.PlayerTwo == "" {
		return fmt.Errorf("both player names are required")
	}
	match := models.TennisMatch{
		ID:        uuid.NewString(),
		EventID:   eventID,
		PlayerOne: strings.TrimSpace(in.PlayerOne),
		PlayerTwo: strings.TrimSpace(in.PlayerTwo),
		ScoreLine: strings.TrimSpace(in.ScoreLine),
		Surface:   in.Surface,
	}
	return tx.Create(&match).Error
}

func (s *EventService) createConcert(tx *gorm.DB, resolver *EntityResolver, eventID string, in *ConcertInput) error {
	artist, err := resolver.ResolveArtist(in.ArtistName)
	if err != nil {
		return err
	}
	concert := models.Concert{
		ID:       uuid.NewString(),
		EventID:  eventID,
		ArtistID: artist.ID,
		TourName: strings.TrimSpace(in.TourName),
	}
	if err := tx.Create(&concert).Error; err != nil {
		return err
	}
	for i, song := range in.Setlist {
		if strings.TrimSpace(song.SongName) == "" {
			return fmt.Errorf("setlist position %d has an empty song name", i+1)
		}
		item := models.SetlistItem{
			ID:        uuid.NewString(),
			ConcertID: concert.ID,
			Position:  i + 1,
			SongName:  song.SongName,
			Encore:    song.Encore,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

type ScorePairInput struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// UpdateEventInput touches scalar fields only. Team and player
// identities are immutable after creation; there is deliberately no way
// to rename a team or swap an appearance here.
type UpdateEventInput struct {
	Date            *time.Time      `json:"date"`
	Venue           *VenueInput     `json:"venue"`
	Rating          *int            `json:"rating"`
	ClearRating     bool            `json:"clear_rating"`
	Notes           *string         `json:"notes"`
	Companions      []string        `json:"companions"`
	Score           *ScorePairInput `json:"score"`
	TennisScoreLine *string         `json:"tennis_score_line"`
}

func (s *EventService) UpdateEvent(userID, eventID string, input UpdateEventInput) (*models.Event, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, fmt.Errorf("rating must be 1-5, got %d", *input.Rating)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if input.Date != nil {
			event.Date = *input.Date
		}
		if input.Venue != nil {
			if strings.TrimSpace(input.Venue.Name) == "" {
				event.VenueID = nil
			} else {
				venue, err := NewEntityResolver(tx).ResolveVenue(input.Venue.Name, input.Venue.City, input.Venue.Country)
				if err != nil {
					return err
				}
				event.VenueID = &venue.ID
			}
		}
		if input.ClearRating {
			event.Rating = nil
		} else if input.Rating != nil {
			event.Rating = input.Rating
		}
		if input.Notes != nil {
			event.Notes = *input.Notes
		}
		if input.Companions != nil {
			event.Companions = input.Companions
		}
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		if input.Score != nil {
			switch event.SportType {
			case models.SportSoccer:
				return tx.Model(&models.SoccerMatch{}).Where("event_id = ?", eventID).
					Updates(map[string]interface{}{"home_score": input.Score.Home, "away_score": input.Score.Away}).Error
			case models.SportBasketball:
				return tx.Model(&models.BasketballGame{}).Where("event_id = ?", eventID).
					Updates(map[string]interface{}{"home_points": input.Score.Home, "away_points": input.Score.Away}).Error
			case models.SportBaseball:
				return tx.Model(&models.BaseballGame{}).Where("event_id = ?", eventID).
					Updates(map[string]interface{}{"home_score": input.Score.Home, "away_score": input.Score.Away}).Error
			default:
				return fmt.Errorf("sport %q has no score pair", event.SportType)
			}
		}
		if input.TennisScoreLine != nil {
			if event.SportType != models.SportTennis {
				return fmt.Errorf("sport %q has no tennis score line", event.SportType)
			}
			return tx.Model(&models.TennisMatch{}).Where("event_id = ?", eventID).
				Update("score_line", *input.TennisScoreLine).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(userID, eventID)
}

// DeleteEvent removes the event with cascading removal of its
// sub-record, appearances and setlist. Players, artists and venues
// stay — they are cross-event entities.
func (s *EventService) DeleteEvent(userID, eventID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		switch event.SportType {
		case models.SportSoccer:
			var match models.SoccerMatch
			if err := tx.Where("event_id = ?", eventID).First(&match).Error; err == nil {
				if err := tx.Where("match_id = ?", match.ID).Delete(&models.SoccerAppearance{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&match).Error; err != nil {
					return err
				}
			}
		case models.SportBasketball:
			var game models.BasketballGame
			if err := tx.Where("event_id = ?", eventID).First(&game).Error; err == nil {
				if err := tx.Where("game_id = ?", game.ID).Delete(&models.BasketballAppearance{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&game).Error; err != nil {
					return err
				}
			}
		case models.SportBaseball:
			var game models.BaseballGame
			if err := tx.Where("event_id = ?", eventID).First(&game).Error; err == nil {
				if err := tx.Where("game_id = ?", game.ID).Delete(&models.BaseballAppearance{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&game).Error; err != nil {
					return err
				}
			}
		case models.SportTennis:
			if err := tx.Where("event_id = ?", eventID).Delete(&models.TennisMatch{}).Error; err != nil {
				return err
			}
		case models.SportConcert:
			var concert models.Concert
			if err := tx.Where("event_id = ?", eventID).First(&concert).Error; err == nil {
				if err := tx.Where("concert_id = ?", concert.ID).Delete(&models.SetlistItem{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&concert).Error; err != nil {
					return err
				}
			}
		}
		return tx.Delete(&event).Error
	})
}

func (s *EventService) preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Venue").
		Preload("SoccerMatch.Appearances.Player").
		Preload("BasketballGame.Appearances.Player").
		Preload("BaseballGame.Appearances.Player").
		Preload("TennisMatch").
		Preload("Concert.Artist").
		Preload("Concert.Setlist", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (s *EventService) GetEvent(userID, eventID string) (*models.Event, error) {
	var event models.Event
	err := s.preloadAll(s.DB).Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns one page of the user's events, newest first.
func (s *EventService) ListEvents(userID string, page, size int) ([]models.Event, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	var total int64
	if err := s.DB.Model(&models.Event{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []models.Event
	err := s.preloadAll(s.DB).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(size).Offset(offset).
		Find(&events).Error
	return events, total, err
}

// Timeline returns the most recent events for the dashboard.
func (s *EventService) Timeline(userID string, limit int) ([]models.Event, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var events []models.Event
	err := s.preloadAll(s.DB).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// SetPhotoURL attaches an uploaded photo to the event.
func (s *EventService) SetPhotoURL(userID, eventID, url string) error {
	res := s.DB.Model(&models.Event{}).
		Where("id = ? AND user_id = ?", eventID, userID).
		Update("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// searchFold flattens accents and case so "Beyoncé" matches "beyonce"
// in search. This is search-only leniency; grouping keys stay exact.
func searchFold(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

func (s *EventService) SearchArtists(query string, limit int) ([]models.Artist, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	q := searchFold(query)
	if q == "" {
		return nil, nil
	}
	var artists []models.Artist
	if err := s.DB.Order("name ASC").Find(&artists).Error; err != nil {
		return nil, err
	}
	out := make([]models.Artist, 0, limit)
	for _, a := range artists {
		if strings.Contains(searchFold(a.Name), q) {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *EventService) SearchPlayers(query string, sportType models.SportType, limit int) ([]models.Player, error) {
	if !sportType.Valid() {
		return nil, fmt.Errorf("unknown sport type %q", sportType)
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	q := searchFold(query)
	if q == "" {
		return nil, nil
	}
	var players []models.Player
	if err := s.DB.Where("sport = ?", sportType).Order("name ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	out := make([]models.Player, 0, limit)
	for _, p := range players {
		if strings.Contains(searchFold(p.Name), q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
