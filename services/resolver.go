package services

import (
	"errors"
	"fmt"
	"strings"

	"event-log-system/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

var foldCaser = cases.Fold()

// CanonicalKey normalizes a display name for grouping: trim plus case
// fold, nothing else. "Man United" and "Manchester United" stay
// distinct — no fuzzy matching.
func CanonicalKey(name string) string {
	return foldCaser.String(strings.TrimSpace(name))
}

// EntityResolver maps raw team/player/artist names from attendance
// records to canonical entities, creating them lazily on first
// reference. Bind it to a transaction when resolving during writes.
type EntityResolver struct {
	DB *gorm.DB
}

func NewEntityResolver(db *gorm.DB) *EntityResolver {
	return &EntityResolver{DB: db}
}

// ResolvePlayer finds or creates the player identified by (name, sport).
func (r *EntityResolver) ResolvePlayer(name string, sportType models.SportType) (*models.Player, error) {
	key := CanonicalKey(name)
	if key == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}

	var player models.Player
	err := r.DB.Where("canonical_key = ? AND sport = ?", key, sportType).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		player = models.Player{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(name),
			Sport:        sportType,
			CanonicalKey: key,
		}
		if err := r.DB.Create(&player).Error; err != nil {
			return nil, err
		}
		return &player, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// ResolveArtist finds or creates the artist identified by name alone.
func (r *EntityResolver) ResolveArtist(name string) (*models.Artist, error) {
	key := CanonicalKey(name)
	if key == "" {
		return nil, fmt.Errorf("artist name must not be empty")
	}

	var artist models.Artist
	err := r.DB.Where("canonical_key = ?", key).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		artist = models.Artist{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(name),
			CanonicalKey: key,
		}
		if err := r.DB.Create(&artist).Error; err != nil {
			return nil, err
		}
		return &artist, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// ResolveVenue finds or creates a venue by canonical name. City and
// country are filled in on first creation and left untouched after.
func (r *EntityResolver) ResolveVenue(name, city, country string) (*models.Venue, error) {
	key := CanonicalKey(name)
	if key == "" {
		return nil, fmt.Errorf("venue name must not be empty")
	}

	var venue models.Venue
	err := r.DB.Where("canonical_key = ?", key).First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		venue = models.Venue{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(name),
			City:         strings.TrimSpace(city),
			Country:      strings.TrimSpace(country),
			CanonicalKey: key,
		}
		if err := r.DB.Create(&venue).Error; err != nil {
			return nil, err
		}
		return &venue, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}
