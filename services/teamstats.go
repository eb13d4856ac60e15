package services

import (
	"sort"

	"event-log-system/models"
)

type TeamStatsEntry struct {
	TeamName   string           `json:"team_name"`
	Sport      models.SportType `json:"sport"`
	Wins       int              `json:"wins"`
	Losses     int              `json:"losses"`
	Draws      int              `json:"draws"`
	TotalGames int              `json:"total_games"`

	// goals/runs for soccer and baseball
	ScoreFor     int64 `json:"score_for"`
	ScoreAgainst int64 `json:"score_against"`
	// basketball keeps its own naming
	PointsFor     int64 `json:"points_for,omitempty"`
	PointsAgainst int64 `json:"points_against,omitempty"`
}

// GetTeamStats walks every team-sport event once and accumulates a
// running record per (sport, canonical team name), merging a team's
// home and away appearances. A nil score counts as 0 for the win/loss
// comparison only; it is never added to the for/against sums.
func (s *StatsService) GetTeamStats(userID string, year *int) ([]TeamStatsEntry, error) {
	type key struct {
		sport models.SportType
		team  string
	}
	byTeam := make(map[key]*TeamStatsEntry)

	get := func(sportType models.SportType, name string) *TeamStatsEntry {
		k := key{sportType, CanonicalKey(name)}
		entry, ok := byTeam[k]
		if !ok {
			entry = &TeamStatsEntry{TeamName: name, Sport: sportType}
			byTeam[k] = entry
		}
		return entry
	}

	addSide := func(entry *TeamStatsEntry, scored, conceded *int, outcome int) {
		entry.TotalGames++
		switch {
		case outcome > 0:
			entry.Wins++
		case outcome < 0:
			entry.Losses++
		default:
			entry.Draws++
		}
		if entry.Sport == models.SportBasketball {
			if scored != nil {
				entry.PointsFor += int64(*scored)
			}
			if conceded != nil {
				entry.PointsAgainst += int64(*conceded)
			}
			return
		}
		if scored != nil {
			entry.ScoreFor += int64(*scored)
		}
		if conceded != nil {
			entry.ScoreAgainst += int64(*conceded)
		}
	}

	for _, sportType := range models.TeamSports {
		rows, err := loadTeamMatches(s.DB, userID, sportType, year)
		if err != nil {
			return nil, err
		}
		for _, m := range rows {
			home, away := intVal(m.HomeScore), intVal(m.AwayScore)
			outcome := 0 // from the home side
			if home > away {
				outcome = 1
			} else if home < away {
				outcome = -1
			}
			addSide(get(sportType, m.HomeTeam), m.HomeScore, m.AwayScore, outcome)
			addSide(get(sportType, m.AwayTeam), m.AwayScore, m.HomeScore, -outcome)
		}
	}

	entries := make([]TeamStatsEntry, 0, len(byTeam))
	for _, e := range byTeam {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalGames != entries[j].TotalGames {
			return entries[i].TotalGames > entries[j].TotalGames
		}
		return entries[i].TeamName < entries[j].TeamName
	})
	return entries, nil
}
