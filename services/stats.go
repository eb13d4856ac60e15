package services

import (
	"fmt"
	"time"

	"event-log-system/models"

	"gorm.io/gorm"
)

// StatsService computes the cross-sport aggregates. Every method is a
// stateless read scoped to one user; grouping happens in memory over
// rows loaded from the attendance store.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// yearBounds returns [Jan 1 of year, Jan 1 of year+1) in UTC. The upper
// bound is exclusive so Dec 31 events with a time component stay in.
func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// intVal sums a nullable stat as zero. Callers that need "was this
// recorded at all" must check the pointer, not this value.
func intVal(v *int) int64 {
	if v == nil {
		return 0
	}
	return int64(*v)
}

// --- row loaders -----------------------------------------------------
// Raw joins bypass GORM's soft-delete scope on events, so every loader
// filters e.deleted_at explicitly.

type eventRow struct {
	ID        string
	Date      time.Time
	SportType models.SportType
	VenueID   *string
	Rating    *int
	CreatedAt time.Time
}

func loadEvents(db *gorm.DB, userID string, year *int) ([]eventRow, error) {
	q := db.Model(&models.Event{}).
		Select("id, date, sport_type, venue_id, rating, created_at").
		Where("user_id = ?", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("date >= ? AND date < ?", from, to)
	}
	var rows []eventRow
	err := q.Order("date ASC, created_at ASC").Scan(&rows).Error
	return rows, err
}

type teamMatchRow struct {
	EventID   string
	Date      time.Time
	VenueID   *string
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	Sport     models.SportType `gorm:"-"`
}

// teamMatchSources maps each team sport to its sub-record table and
// score column pair.
var teamMatchSources = map[models.SportType]struct {
	table   string
	homeCol string
	awayCol string
}{
	models.SportSoccer:     {"soccer_matches", "home_score", "away_score"},
	models.SportBasketball: {"basketball_games", "home_points", "away_points"},
	models.SportBaseball:   {"baseball_games", "home_score", "away_score"},
}

func loadTeamMatches(db *gorm.DB, userID string, sportType models.SportType, year *int) ([]teamMatchRow, error) {
	src, ok := teamMatchSources[sportType]
	if !ok {
		return nil, fmt.Errorf("%q is not a team sport", sportType)
	}
	q := db.Table(src.table+" m").
		Select(fmt.Sprintf(
			"e.id AS event_id, e.date, e.venue_id, m.home_team, m.away_team, m.%s AS home_score, m.%s AS away_score",
			src.homeCol, src.awayCol)).
		Joins("JOIN events e ON e.id = m.event_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var rows []teamMatchRow
	if err := q.Order("e.date ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Sport = sportType
	}
	return rows, nil
}

// playerStatRow is the sport-neutral view of one appearance, with the
// sport's tracked stats summed-as-zero into a map keyed by stat name.
type playerStatRow struct {
	EventID    string
	Date       time.Time
	PlayerID   string
	PlayerName string
	TeamName   string
	Stats      map[string]int64
}

func loadSoccerAppearances(db *gorm.DB, userID string, year *int) ([]playerStatRow, error) {
	type row struct {
		EventID     string
		Date        time.Time
		PlayerID    string
		PlayerName  string
		TeamName    string
		Goals       *int
		Assists     *int
		YellowCards *int
		RedCards    *int
	}
	q := db.Table("soccer_appearances a").
		Select("e.id AS event_id, e.date, a.player_id, p.name AS player_name, a.team_name, a.goals, a.assists, a.yellow_cards, a.red_cards").
		Joins("JOIN soccer_matches m ON m.id = a.match_id").
		Joins("JOIN events e ON e.id = m.event_id").
		Joins("JOIN players p ON p.id = a.player_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var raw []row
	if err := q.Scan(&raw).Error; err != nil {
		return nil, err
	}
	out := make([]playerStatRow, 0, len(raw))
	for _, r := range raw {
		out = append(out, playerStatRow{
			EventID: r.EventID, Date: r.Date,
			PlayerID: r.PlayerID, PlayerName: r.PlayerName, TeamName: r.TeamName,
			Stats: map[string]int64{
				"goals":        intVal(r.Goals),
				"assists":      intVal(r.Assists),
				"yellow_cards": intVal(r.YellowCards),
				"red_cards":    intVal(r.RedCards),
			},
		})
	}
	return out, nil
}

func loadBasketballAppearances(db *gorm.DB, userID string, year *int) ([]playerStatRow, error) {
	type row struct {
		EventID    string
		Date       time.Time
		PlayerID   string
		PlayerName string
		TeamName   string
		Points     *int
		Rebounds   *int
		Assists    *int
	}
	q := db.Table("basketball_appearances a").
		Select("e.id AS event_id, e.date, a.player_id, p.name AS player_name, a.team_name, a.points, a.rebounds, a.assists").
		Joins("JOIN basketball_games g ON g.id = a.game_id").
		Joins("JOIN events e ON e.id = g.event_id").
		Joins("JOIN players p ON p.id = a.player_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var raw []row
	if err := q.Scan(&raw).Error; err != nil {
		return nil, err
	}
	out := make([]playerStatRow, 0, len(raw))
	for _, r := range raw {
		out = append(out, playerStatRow{
			EventID: r.EventID, Date: r.Date,
			PlayerID: r.PlayerID, PlayerName: r.PlayerName, TeamName: r.TeamName,
			Stats: map[string]int64{
				"points":   intVal(r.Points),
				"rebounds": intVal(r.Rebounds),
				"assists":  intVal(r.Assists),
			},
		})
	}
	return out, nil
}

func loadBaseballAppearances(db *gorm.DB, userID string, year *int) ([]playerStatRow, error) {
	type row struct {
		EventID    string
		Date       time.Time
		PlayerID   string
		PlayerName string
		TeamName   string
		HomeRuns   *int
		Hits       *int
		RBIs       *int `gorm:"column:rbis"`
	}
	q := db.Table("baseball_appearances a").
		Select("e.id AS event_id, e.date, a.player_id, p.name AS player_name, a.team_name, a.home_runs, a.hits, a.rbis").
		Joins("JOIN baseball_games g ON g.id = a.game_id").
		Joins("JOIN events e ON e.id = g.event_id").
		Joins("JOIN players p ON p.id = a.player_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var raw []row
	if err := q.Scan(&raw).Error; err != nil {
		return nil, err
	}
	out := make([]playerStatRow, 0, len(raw))
	for _, r := range raw {
		out = append(out, playerStatRow{
			EventID: r.EventID, Date: r.Date,
			PlayerID: r.PlayerID, PlayerName: r.PlayerName, TeamName: r.TeamName,
			Stats: map[string]int64{
				"home_runs": intVal(r.HomeRuns),
				"hits":      intVal(r.Hits),
				"rbis":      intVal(r.RBIs),
			},
		})
	}
	return out, nil
}

func loadAppearances(db *gorm.DB, userID string, sportType models.SportType, year *int) ([]playerStatRow, error) {
	switch sportType {
	case models.SportSoccer:
		return loadSoccerAppearances(db, userID, year)
	case models.SportBasketball:
		return loadBasketballAppearances(db, userID, year)
	case models.SportBaseball:
		return loadBaseballAppearances(db, userID, year)
	default:
		return nil, fmt.Errorf("sport %q has no appearance rows", sportType)
	}
}

type concertRow struct {
	EventID    string
	Date       time.Time
	ConcertID  string
	ArtistID   string
	ArtistName string
	TourName   string
}

func loadConcerts(db *gorm.DB, userID string, year *int) ([]concertRow, error) {
	q := db.Table("concerts c").
		Select("e.id AS event_id, e.date, c.id AS concert_id, c.artist_id, ar.name AS artist_name, c.tour_name").
		Joins("JOIN events e ON e.id = c.event_id").
		Joins("JOIN artists ar ON ar.id = c.artist_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var rows []concertRow
	err := q.Order("e.date ASC").Scan(&rows).Error
	return rows, err
}

type setlistRow struct {
	ConcertID string
	SongName  string
	Encore    bool
}

func loadSetlistItems(db *gorm.DB, userID string, year *int) ([]setlistRow, error) {
	q := db.Table("setlist_items si").
		Select("si.concert_id, si.song_name, si.encore").
		Joins("JOIN concerts c ON c.id = si.concert_id").
		Joins("JOIN events e ON e.id = c.event_id").
		Where("e.user_id = ? AND e.deleted_at IS NULL", userID)
	if year != nil {
		from, to := yearBounds(*year)
		q = q.Where("e.date >= ? AND e.date < ?", from, to)
	}
	var rows []setlistRow
	err := q.Scan(&rows).Error
	return rows, err
}

func loadVenuesByID(db *gorm.DB, ids []string) (map[string]models.Venue, error) {
	out := make(map[string]models.Venue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var venues []models.Venue
	if err := db.Where("id IN ?", ids).Find(&venues).Error; err != nil {
		return nil, err
	}
	for _, v := range venues {
		out[v.ID] = v
	}
	return out, nil
}
