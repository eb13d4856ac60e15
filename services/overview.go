package services

import (
	"event-log-system/models"
)

type OverviewStats struct {
	TotalEvents  int64                      `json:"total_events"`
	EventsByType map[models.SportType]int64 `json:"events_by_type"`
	UniqueVenues int64                      `json:"unique_venues"`
	// distinct players across all three team sports, counted once even
	// if the same player id shows up in more than one sport
	UniquePlayersWitnessed int64 `json:"unique_players_witnessed"`
	// per-sport signature sums, no cross-sport unit conversion
	AggregateStats map[models.SportType]map[string]int64 `json:"aggregate_stats"`
}

// GetOverviewStats computes the cross-sport dashboard totals.
func (s *StatsService) GetOverviewStats(userID string, year *int) (*OverviewStats, error) {
	events, err := loadEvents(s.DB, userID, year)
	if err != nil {
		return nil, err
	}

	out := &OverviewStats{
		EventsByType:   make(map[models.SportType]int64),
		AggregateStats: make(map[models.SportType]map[string]int64),
	}

	venues := make(map[string]struct{})
	for _, e := range events {
		out.TotalEvents++
		out.EventsByType[e.SportType]++
		if e.VenueID != nil {
			venues[*e.VenueID] = struct{}{}
		}
	}
	out.UniqueVenues = int64(len(venues))

	players := make(map[string]struct{})
	for _, sportType := range models.TeamSports {
		rows, err := loadAppearances(s.DB, userID, sportType, year)
		if err != nil {
			return nil, err
		}
		sums := make(map[string]int64)
		for _, name := range leaderboardStats[sportType] {
			sums[name] = 0
		}
		for _, r := range rows {
			players[r.PlayerID] = struct{}{}
			for name, v := range r.Stats {
				sums[name] += v
			}
		}
		out.AggregateStats[sportType] = sums
	}
	out.UniquePlayersWitnessed = int64(len(players))

	setlists, err := loadSetlistItems(s.DB, userID, year)
	if err != nil {
		return nil, err
	}
	out.AggregateStats[models.SportConcert] = map[string]int64{
		"songs_heard": int64(len(setlists)),
	}

	return out, nil
}
