package services

import (
	"testing"

	"event-log-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, CanonicalKey("Arsenal"), CanonicalKey("  arsenal "))
	assert.Equal(t, CanonicalKey("J. SMITH"), CanonicalKey("j. smith"))
	// no fuzzy matching: different spellings stay different
	assert.NotEqual(t, CanonicalKey("Man United"), CanonicalKey("Manchester United"))
	// interior whitespace is identity, only the edges are trimmed
	assert.NotEqual(t, CanonicalKey("Man  United"), CanonicalKey("Man United"))
	assert.Equal(t, "", CanonicalKey("   "))
}

func TestResolvePlayerLazyCreation(t *testing.T) {
	db := newTestDB(t)
	resolver := NewEntityResolver(db)

	first, err := resolver.ResolvePlayer("J. Smith", models.SportSoccer)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, "J. Smith", first.Name)

	// case/whitespace variants collapse onto the same player
	again, err := resolver.ResolvePlayer("  j. smith ", models.SportSoccer)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// same name in another sport is a different entity
	hoops, err := resolver.ResolvePlayer("J. Smith", models.SportBasketball)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, hoops.ID)

	var count int64
	require.NoError(t, db.Model(&models.Player{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestResolvePlayerEmptyName(t *testing.T) {
	db := newTestDB(t)
	_, err := NewEntityResolver(db).ResolvePlayer("   ", models.SportSoccer)
	assert.Error(t, err)
}

func TestResolveArtistAndVenue(t *testing.T) {
	db := newTestDB(t)
	resolver := NewEntityResolver(db)

	a1, err := resolver.ResolveArtist("The National")
	require.NoError(t, err)
	a2, err := resolver.ResolveArtist("the national")
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)

	v1, err := resolver.ResolveVenue("Camp Nou", "Barcelona", "Spain")
	require.NoError(t, err)
	assert.Equal(t, "Barcelona", v1.City)
	assert.Equal(t, "Spain", v1.Country)

	// city/country are set on first creation only
	v2, err := resolver.ResolveVenue("CAMP NOU", "Elsewhere", "France")
	require.NoError(t, err)
	assert.Equal(t, v1.ID, v2.ID)
	assert.Equal(t, "Barcelona", v2.City)
}
