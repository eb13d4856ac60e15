package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"event-log-system/models"

	"gorm.io/gorm"
)

// StatAppearances ranks by number of appearance rows instead of a
// tracked counting stat.
const StatAppearances = "appearances"

// leaderboardStats lists the tracked counting stats per sport; only
// these (plus "appearances") are valid rank keys.
var leaderboardStats = map[models.SportType][]string{
	models.SportSoccer:     {"goals", "assists", "yellow_cards", "red_cards"},
	models.SportBasketball: {"points", "rebounds", "assists"},
	models.SportBaseball:   {"home_runs", "hits", "rbis"},
}

type PlayerLeaderboardEntry struct {
	PlayerID    string           `json:"player_id"`
	PlayerName  string           `json:"player_name"`
	TeamName    string           `json:"team_name,omitempty"`
	Stats       map[string]int64 `json:"stats"`
	Appearances int64            `json:"appearances"`

	lastSeen time.Time
}

// GetLeaderboard ranks the players the user has seen in one sport by a
// tracked stat. Unknown sport/stat and a negative limit are caller
// contract violations, rejected before any query runs.
func (s *StatsService) GetLeaderboard(userID string, sportType models.SportType, statType string, limit int, year *int) ([]PlayerLeaderboardEntry, error) {
	tracked, ok := leaderboardStats[sportType]
	if !ok {
		return nil, fmt.Errorf("sport %q has no player leaderboard", sportType)
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	if limit == 0 {
		limit = 10
	}
	if statType != StatAppearances && !containsString(tracked, statType) {
		return nil, fmt.Errorf("unknown stat %q for sport %q", statType, sportType)
	}

	rows, err := loadAppearances(s.DB, userID, sportType, year)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[string]*PlayerLeaderboardEntry)
	for _, r := range rows {
		entry, ok := byPlayer[r.PlayerID]
		if !ok {
			entry = &PlayerLeaderboardEntry{
				PlayerID:   r.PlayerID,
				PlayerName: r.PlayerName,
				Stats:      make(map[string]int64, len(tracked)),
			}
			for _, name := range tracked {
				entry.Stats[name] = 0
			}
			byPlayer[r.PlayerID] = entry
		}
		for name, v := range r.Stats {
			entry.Stats[name] += v
		}
		entry.Appearances++
		// keep the team name from the most recent appearance
		if r.TeamName != "" && !r.Date.Before(entry.lastSeen) {
			entry.TeamName = r.TeamName
			entry.lastSeen = r.Date
		}
	}

	entries := make([]PlayerLeaderboardEntry, 0, len(byPlayer))
	for _, e := range byPlayer {
		entries = append(entries, *e)
	}

	rankValue := func(e PlayerLeaderboardEntry) int64 {
		if statType == StatAppearances {
			return e.Appearances
		}
		return e.Stats[statType]
	}
	sort.Slice(entries, func(i, j int) bool {
		vi, vj := rankValue(entries[i]), rankValue(entries[j])
		if vi != vj {
			return vi > vj
		}
		if entries[i].Appearances != entries[j].Appearances {
			return entries[i].Appearances > entries[j].Appearances
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type PlayerProfile struct {
	PlayerID    string           `json:"player_id"`
	PlayerName  string           `json:"player_name"`
	Sport       models.SportType `json:"sport"`
	TeamName    string           `json:"team_name,omitempty"`
	Stats       map[string]int64 `json:"stats"`
	Appearances int64            `json:"appearances"`
	FirstSeen   *time.Time       `json:"first_seen,omitempty"`
	LastSeen    *time.Time       `json:"last_seen,omitempty"`
}

// GetPlayerProfile sums everything the user has witnessed from one
// player. An unknown player id yields (nil, nil), not an error.
func (s *StatsService) GetPlayerProfile(userID, playerID string) (*PlayerProfile, error) {
	var player models.Player
	err := s.DB.First(&player, "id = ?", playerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile := &PlayerProfile{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Sport:      player.Sport,
		Stats:      make(map[string]int64),
	}
	for _, name := range leaderboardStats[player.Sport] {
		profile.Stats[name] = 0
	}

	rows, err := loadAppearances(s.DB, userID, player.Sport, nil)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.PlayerID != playerID {
			continue
		}
		for name, v := range r.Stats {
			profile.Stats[name] += v
		}
		profile.Appearances++
		d := r.Date
		if profile.FirstSeen == nil || d.Before(*profile.FirstSeen) {
			first := d
			profile.FirstSeen = &first
		}
		if profile.LastSeen == nil || d.After(*profile.LastSeen) {
			last := d
			profile.LastSeen = &last
			if r.TeamName != "" {
				profile.TeamName = r.TeamName
			}
		}
	}
	return profile, nil
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
