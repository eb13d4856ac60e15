package services

import (
	"sort"

	"event-log-system/models"
)

type VenueStatsEntry struct {
	VenueID     string                   `json:"venue_id"`
	VenueName   string                   `json:"venue_name"`
	City        string                   `json:"city,omitempty"`
	Country     string                   `json:"country,omitempty"`
	TotalEvents int                      `json:"total_events"`
	EventTypes  map[models.SportType]int `json:"event_types"`
	Wins        int                      `json:"wins"`
	Losses      int                      `json:"losses"`
	Draws       int                      `json:"draws"`
}

// GetVenueStats groups every event type by venue. For score-bearing
// events the outcome tally always takes the home side of the attended
// match as the reference side; the aggregator has no idea which team
// the user follows, this is a fixed convention.
func (s *StatsService) GetVenueStats(userID string, year *int) ([]VenueStatsEntry, error) {
	events, err := loadEvents(s.DB, userID, year)
	if err != nil {
		return nil, err
	}

	// home-side outcome per event id: +1 win, -1 loss, 0 draw
	outcomes := make(map[string]int)
	for _, sportType := range models.TeamSports {
		rows, err := loadTeamMatches(s.DB, userID, sportType, year)
		if err != nil {
			return nil, err
		}
		for _, m := range rows {
			home, away := intVal(m.HomeScore), intVal(m.AwayScore)
			switch {
			case home > away:
				outcomes[m.EventID] = 1
			case home < away:
				outcomes[m.EventID] = -1
			default:
				outcomes[m.EventID] = 0
			}
		}
	}

	byVenue := make(map[string]*VenueStatsEntry)
	for _, e := range events {
		if e.VenueID == nil {
			continue
		}
		entry, ok := byVenue[*e.VenueID]
		if !ok {
			entry = &VenueStatsEntry{
				VenueID:    *e.VenueID,
				EventTypes: make(map[models.SportType]int),
			}
			byVenue[*e.VenueID] = entry
		}
		entry.TotalEvents++
		entry.EventTypes[e.SportType]++
		if e.SportType.IsTeamSport() {
			switch outcomes[e.ID] {
			case 1:
				entry.Wins++
			case -1:
				entry.Losses++
			default:
				entry.Draws++
			}
		}
	}

	ids := make([]string, 0, len(byVenue))
	for id := range byVenue {
		ids = append(ids, id)
	}
	venues, err := loadVenuesByID(s.DB, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]VenueStatsEntry, 0, len(byVenue))
	for id, e := range byVenue {
		if v, ok := venues[id]; ok {
			e.VenueName = v.Name
			e.City = v.City
			e.Country = v.Country
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalEvents != entries[j].TotalEvents {
			return entries[i].TotalEvents > entries[j].TotalEvents
		}
		return entries[i].VenueName < entries[j].VenueName
	})
	return entries, nil
}
