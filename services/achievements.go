package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"event-log-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

type AchievementProgress struct {
	Definition     models.AchievementDefinition `json:"definition"`
	Unlocked       bool                         `json:"unlocked"`
	UnlockedAt     *time.Time                   `json:"unlocked_at,omitempty"`
	TriggerEventID *string                      `json:"trigger_event_id,omitempty"`
	Current        int64                        `json:"current"`
	Target         int64                        `json:"target"`
	Percentage     int                          `json:"percentage"`
}

// criteriaResult carries the computed statistic plus the most recent
// qualifying event, which becomes the unlock trigger.
type criteriaResult struct {
	current int64
	trigger *string
}

type criteriaFunc func(s *AchievementService, userID string, def models.AchievementDefinition) (criteriaResult, error)

// criteriaRegistry maps a criteria type to its statistic computation.
// A new achievement kind is added by registering a function here, not
// by branching inside Evaluate. Definitions whose type has no entry
// report zero progress instead of failing the whole evaluation.
var criteriaRegistry = map[models.CriteriaType]criteriaFunc{
	models.CriteriaTotalEvents:       criteriaTotalEvents,
	models.CriteriaSportEvents:       criteriaSportEvents,
	models.CriteriaDistinctVenues:    criteriaDistinctVenues,
	models.CriteriaDistinctCountries: criteriaDistinctCountries,
	models.CriteriaDistinctArtists:   criteriaDistinctArtists,
	models.CriteriaSameArtistRepeat:  criteriaSameArtistRepeat,
	models.CriteriaSameVenueRepeat:   criteriaSameVenueRepeat,
	models.CriteriaEventsSameDay:     criteriaEventsSameDay,
	models.CriteriaMonthStreak:       criteriaMonthStreak,
	models.CriteriaGoalsWitnessed:    criteriaGoalsWitnessed,
	models.CriteriaPointsWitnessed:   criteriaPointsWitnessed,
	models.CriteriaSongsHeard:        criteriaSongsHeard,
	models.CriteriaCleanSheets:       criteriaCleanSheets,
	models.CriteriaRatedEvents:       criteriaRatedEvents,
}

// RegisterCriteria installs a computation for a criteria type.
func RegisterCriteria(t models.CriteriaType, fn criteriaFunc) {
	criteriaRegistry[t] = fn
}

// Evaluate computes progress for every catalog definition and unlocks
// the ones whose threshold is newly reached. Re-running it with no new
// events changes nothing: unlocks are recorded at most once per
// (user, achievement) and never updated.
func (s *AchievementService) Evaluate(userID string) ([]AchievementProgress, error) {
	var existing []models.UserAchievement
	if err := s.DB.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return nil, err
	}
	unlockedBy := make(map[string]models.UserAchievement, len(existing))
	for _, ua := range existing {
		unlockedBy[ua.AchievementCode] = ua
	}

	// Several catalog tiers share one (criteria, scope) computation.
	memo := make(map[string]criteriaResult)

	results := make([]AchievementProgress, 0, len(models.AchievementCatalog))
	for _, def := range models.AchievementCatalog {
		res := criteriaResult{}
		if fn, ok := criteriaRegistry[def.Criteria]; ok {
			key := string(def.Criteria)
			if def.Sport != nil {
				key += "|" + string(*def.Sport)
			}
			cached, ok := memo[key]
			if ok {
				res = cached
			} else {
				var err error
				res, err = fn(s, userID, def)
				if err != nil {
					return nil, err
				}
				memo[key] = res
			}
		}

		prog := AchievementProgress{
			Definition: def,
			Current:    res.current,
			Target:     def.Threshold,
			Percentage: progressPercentage(res.current, def.Threshold),
		}

		if ua, ok := unlockedBy[def.Code]; ok {
			prog.Unlocked = true
			at := ua.UnlockedAt
			prog.UnlockedAt = &at
			prog.TriggerEventID = ua.TriggerEventID
		} else if res.current >= def.Threshold {
			ua, err := s.unlock(userID, def.Code, res.trigger)
			if err != nil {
				return nil, err
			}
			prog.Unlocked = true
			at := ua.UnlockedAt
			prog.UnlockedAt = &at
			prog.TriggerEventID = ua.TriggerEventID
		}
		results = append(results, prog)
	}
	return results, nil
}

func progressPercentage(current, target int64) int {
	if target <= 0 {
		return 100
	}
	if current <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) * 100 / float64(target)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// unlock inserts the unlock record. The composite unique index on
// (user_id, achievement_code) settles concurrent evaluations: the
// loser's insert is rejected and the stored record is returned as-is.
func (s *AchievementService) unlock(userID, code string, trigger *string) (*models.UserAchievement, error) {
	ua := models.UserAchievement{
		ID:              uuid.NewString(),
		UserID:          userID,
		AchievementCode: code,
		TriggerEventID:  trigger,
	}
	err := s.DB.Create(&ua).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var stored models.UserAchievement
			if err := s.DB.Where("user_id = ? AND achievement_code = ?", userID, code).First(&stored).Error; err != nil {
				return nil, err
			}
			return &stored, nil
		}
		return nil, err
	}
	log.Printf("🏅 Achievement unlocked: %s → %s", code, userID)
	return &ua, nil
}

// --- criteria computations -------------------------------------------
// Loaders return rows in ascending date order, so the last qualifying
// row is the most recent qualifying event.

func criteriaTotalEvents(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	res := criteriaResult{current: int64(len(events))}
	if len(events) > 0 {
		id := events[len(events)-1].ID
		res.trigger = &id
	}
	return res, nil
}

func criteriaSportEvents(s *AchievementService, userID string, def models.AchievementDefinition) (criteriaResult, error) {
	if def.Sport == nil {
		return criteriaResult{}, fmt.Errorf("achievement %s has sport_events criteria without a sport scope", def.Code)
	}
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	res := criteriaResult{}
	for _, e := range events {
		if e.SportType == *def.Sport {
			res.current++
			id := e.ID
			res.trigger = &id
		}
	}
	return res, nil
}

func criteriaDistinctVenues(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	seen := make(map[string]struct{})
	res := criteriaResult{}
	for _, e := range events {
		if e.VenueID == nil {
			continue
		}
		seen[*e.VenueID] = struct{}{}
		id := e.ID
		res.trigger = &id
	}
	res.current = int64(len(seen))
	return res, nil
}

func criteriaDistinctCountries(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e.VenueID != nil {
			ids = append(ids, *e.VenueID)
		}
	}
	venues, err := loadVenuesByID(s.DB, ids)
	if err != nil {
		return criteriaResult{}, err
	}
	countries := make(map[string]struct{})
	res := criteriaResult{}
	for _, e := range events {
		if e.VenueID == nil {
			continue
		}
		v, ok := venues[*e.VenueID]
		if !ok || v.Country == "" {
			continue
		}
		countries[CanonicalKey(v.Country)] = struct{}{}
		id := e.ID
		res.trigger = &id
	}
	res.current = int64(len(countries))
	return res, nil
}

func criteriaDistinctArtists(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	concerts, err := loadConcerts(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	seen := make(map[string]struct{})
	res := criteriaResult{}
	for _, c := range concerts {
		seen[c.ArtistID] = struct{}{}
		id := c.EventID
		res.trigger = &id
	}
	res.current = int64(len(seen))
	return res, nil
}

func criteriaSameArtistRepeat(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	concerts, err := loadConcerts(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	counts := make(map[string]int64)
	var best string
	for _, c := range concerts {
		counts[c.ArtistID]++
		if best == "" || counts[c.ArtistID] > counts[best] {
			best = c.ArtistID
		}
	}
	res := criteriaResult{current: counts[best]}
	for _, c := range concerts {
		if c.ArtistID == best {
			id := c.EventID
			res.trigger = &id
		}
	}
	return res, nil
}

func criteriaSameVenueRepeat(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	counts := make(map[string]int64)
	var best string
	for _, e := range events {
		if e.VenueID == nil {
			continue
		}
		counts[*e.VenueID]++
		if best == "" || counts[*e.VenueID] > counts[best] {
			best = *e.VenueID
		}
	}
	res := criteriaResult{current: counts[best]}
	for _, e := range events {
		if e.VenueID != nil && *e.VenueID == best {
			id := e.ID
			res.trigger = &id
		}
	}
	return res, nil
}

func criteriaEventsSameDay(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	counts := make(map[string]int64)
	var best string
	for _, e := range events {
		day := e.Date.UTC().Format("2006-01-02")
		counts[day]++
		if best == "" || counts[day] > counts[best] {
			best = day
		}
	}
	res := criteriaResult{current: counts[best]}
	for _, e := range events {
		if e.Date.UTC().Format("2006-01-02") == best {
			id := e.ID
			res.trigger = &id
		}
	}
	return res, nil
}

func criteriaMonthStreak(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	// month index -> latest event that month; events arrive date-asc so
	// later writes win
	latest := make(map[int]string)
	for _, e := range events {
		d := e.Date.UTC()
		latest[d.Year()*12+int(d.Month())-1] = e.ID
	}
	if len(latest) == 0 {
		return criteriaResult{}, nil
	}
	months := make([]int, 0, len(latest))
	for m := range latest {
		months = append(months, m)
	}
	sort.Ints(months)

	bestLen, bestEnd := 1, months[0]
	runLen, runEnd := 1, months[0]
	for i := 1; i < len(months); i++ {
		if months[i] == months[i-1]+1 {
			runLen++
		} else {
			runLen = 1
		}
		runEnd = months[i]
		if runLen >= bestLen {
			bestLen, bestEnd = runLen, runEnd
		}
	}
	id := latest[bestEnd]
	return criteriaResult{current: int64(bestLen), trigger: &id}, nil
}

func criteriaGoalsWitnessed(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	return sumWitnessedScores(s, userID, models.SportSoccer)
}

func criteriaPointsWitnessed(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	return sumWitnessedScores(s, userID, models.SportBasketball)
}

func sumWitnessedScores(s *AchievementService, userID string, sportType models.SportType) (criteriaResult, error) {
	rows, err := loadTeamMatches(s.DB, userID, sportType, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	res := criteriaResult{}
	for _, m := range rows {
		if m.HomeScore == nil && m.AwayScore == nil {
			continue
		}
		res.current += intVal(m.HomeScore) + intVal(m.AwayScore)
		id := m.EventID
		res.trigger = &id
	}
	return res, nil
}

func criteriaSongsHeard(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	concerts, err := loadConcerts(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	setlists, err := loadSetlistItems(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	songsPerConcert := make(map[string]int64)
	for _, item := range setlists {
		songsPerConcert[item.ConcertID]++
	}
	res := criteriaResult{}
	for _, c := range concerts {
		n := songsPerConcert[c.ConcertID]
		if n == 0 {
			continue
		}
		res.current += n
		id := c.EventID
		res.trigger = &id
	}
	return res, nil
}

// A clean sheet is a side conceding zero with the score actually
// recorded — a nil score is unknown, never a shutout.
func criteriaCleanSheets(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	rows, err := loadTeamMatches(s.DB, userID, models.SportSoccer, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	res := criteriaResult{}
	for _, m := range rows {
		qualified := false
		if m.AwayScore != nil && *m.AwayScore == 0 {
			res.current++
			qualified = true
		}
		if m.HomeScore != nil && *m.HomeScore == 0 {
			res.current++
			qualified = true
		}
		if qualified {
			id := m.EventID
			res.trigger = &id
		}
	}
	return res, nil
}

func criteriaRatedEvents(s *AchievementService, userID string, _ models.AchievementDefinition) (criteriaResult, error) {
	events, err := loadEvents(s.DB, userID, nil)
	if err != nil {
		return criteriaResult{}, err
	}
	res := criteriaResult{}
	for _, e := range events {
		if e.Rating != nil {
			res.current++
			id := e.ID
			res.trigger = &id
		}
	}
	return res, nil
}
