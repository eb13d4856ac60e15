package models

// Per-player statistic rows, one table per sport because the tracked
// counting stats differ. All stat fields are nullable: nil means the
// stat was not recorded, which is treated as 0 when summing but is
// excluded from "has occurred" checks.

// SoccerAppearance: at most one row per (match, player).
type SoccerAppearance struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID     string  `gorm:"uniqueIndex:idx_soccer_appearance;not null" json:"match_id"`
	PlayerID    string  `gorm:"uniqueIndex:idx_soccer_appearance;not null" json:"player_id"`
	Player      *Player `json:"player,omitempty"`
	TeamName    string  `json:"team_name,omitempty"`
	Goals       *int    `json:"goals,omitempty"`
	Assists     *int    `json:"assists,omitempty"`
	YellowCards *int    `json:"yellow_cards,omitempty"`
	RedCards    *int    `json:"red_cards,omitempty"`
}

type BasketballAppearance struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	GameID   string  `gorm:"uniqueIndex:idx_basketball_appearance;not null" json:"game_id"`
	PlayerID string  `gorm:"uniqueIndex:idx_basketball_appearance;not null" json:"player_id"`
	Player   *Player `json:"player,omitempty"`
	TeamName string  `json:"team_name,omitempty"`
	Points   *int    `json:"points,omitempty"`
	Rebounds *int    `json:"rebounds,omitempty"`
	Assists  *int    `json:"assists,omitempty"`
}

type BaseballAppearance struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	GameID   string  `gorm:"uniqueIndex:idx_baseball_appearance;not null" json:"game_id"`
	PlayerID string  `gorm:"uniqueIndex:idx_baseball_appearance;not null" json:"player_id"`
	Player   *Player `json:"player,omitempty"`
	TeamName string  `json:"team_name,omitempty"`
	HomeRuns *int    `json:"home_runs,omitempty"`
	Hits     *int    `json:"hits,omitempty"`
	RBIs     *int    `gorm:"column:rbis" json:"rbis,omitempty"`
}
