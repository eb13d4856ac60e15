package services

import (
	"sort"
)

type SongPlay struct {
	SongName string `json:"song_name"`
	Count    int    `json:"count"`
}

type ArtistStatsEntry struct {
	ArtistID        string     `json:"artist_id"`
	ArtistName      string     `json:"artist_name"`
	TimesSeen       int        `json:"times_seen"`
	TotalSongsHeard int        `json:"total_songs_heard"`
	TopSongs        []SongPlay `json:"top_songs"`
}

const topSongLimit = 10

// GetArtistStats groups the user's concerts by artist and tallies how
// often each song came up across the attached setlists. Song names are
// grouped case-sensitively, exactly as entered. TotalSongsHeard counts
// repeats, not distinct songs.
func (s *StatsService) GetArtistStats(userID string, year *int) ([]ArtistStatsEntry, error) {
	concerts, err := loadConcerts(s.DB, userID, year)
	if err != nil {
		return nil, err
	}
	setlists, err := loadSetlistItems(s.DB, userID, year)
	if err != nil {
		return nil, err
	}

	concertArtist := make(map[string]string, len(concerts)) // concert id -> artist id
	byArtist := make(map[string]*ArtistStatsEntry)
	for _, c := range concerts {
		concertArtist[c.ConcertID] = c.ArtistID
		entry, ok := byArtist[c.ArtistID]
		if !ok {
			entry = &ArtistStatsEntry{ArtistID: c.ArtistID, ArtistName: c.ArtistName}
			byArtist[c.ArtistID] = entry
		}
		entry.TimesSeen++
	}

	songCounts := make(map[string]map[string]int) // artist id -> song -> plays
	for _, item := range setlists {
		artistID, ok := concertArtist[item.ConcertID]
		if !ok {
			continue
		}
		if songCounts[artistID] == nil {
			songCounts[artistID] = make(map[string]int)
		}
		songCounts[artistID][item.SongName]++
	}

	entries := make([]ArtistStatsEntry, 0, len(byArtist))
	for artistID, e := range byArtist {
		plays := make([]SongPlay, 0, len(songCounts[artistID]))
		for song, count := range songCounts[artistID] {
			e.TotalSongsHeard += count
			plays = append(plays, SongPlay{SongName: song, Count: count})
		}
		sort.Slice(plays, func(i, j int) bool {
			if plays[i].Count != plays[j].Count {
				return plays[i].Count > plays[j].Count
			}
			return plays[i].SongName < plays[j].SongName
		})
		if len(plays) > topSongLimit {
			plays = plays[:topSongLimit]
		}
		e.TopSongs = plays
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TimesSeen != entries[j].TimesSeen {
			return entries[i].TimesSeen > entries[j].TimesSeen
		}
		return entries[i].ArtistName < entries[j].ArtistName
	})
	return entries, nil
}
