package models

// Player is a cross-event entity identified by (name, sport). Created
// lazily on first reference from an attendance record; never deleted
// while appearances point at it. CanonicalKey is the trimmed,
// case-folded name — exact identity, no fuzzy matching, so
// "Man United" and "Manchester United" stay distinct.
type Player struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Sport        SportType `gorm:"type:varchar(16);uniqueIndex:idx_player_identity;not null" json:"sport"`
	CanonicalKey string    `gorm:"uniqueIndex:idx_player_identity;not null" json:"-"`

	Timestamps
}

// Artist is identified by name alone.
type Artist struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	CanonicalKey string `gorm:"uniqueIndex;not null" json:"-"`

	Timestamps
}
