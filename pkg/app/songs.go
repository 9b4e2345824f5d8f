package app

import (
	"fmt"
	"strings"

	"bandbook/internal/util"
	"bandbook/pkg/domain"
)

// ListSongs returns the whole library ordered by (artist, title) ascending.
func (a *App) ListSongs() ([]domain.Song, error) {
	return a.store.ListSongs()
}

// ListSongsByArtist returns exact artist matches ordered by title.
func (a *App) ListSongsByArtist(artist string) ([]domain.Song, error) {
	return a.store.ListSongsByArtist(artist)
}

// AddSong trims the title and artist, assigns a fresh ID and stores the
// song. An empty status defaults to TO_LEARN. It fails only when the
// underlying storage fails.
func (a *App) AddSong(title, artist string, status domain.SongStatus) (domain.Song, error) {
	if status == "" {
		status = domain.StatusToLearn
	}
	song := domain.Song{
		ID:     util.NewID(),
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
		Status: status,
	}
	if err := a.store.SaveSong(song); err != nil {
		return domain.Song{}, fmt.Errorf("save song: %w", err)
	}
	return song, nil
}

// UpdateSongStatus replaces the song's status. Unknown IDs are a silent
// no-op; applying the same status twice is harmless.
func (a *App) UpdateSongStatus(songID string, status domain.SongStatus) error {
	return a.store.SetSongStatus(songID, status)
}

// DeleteSong removes the song if present.
func (a *App) DeleteSong(songID string) error {
	return a.store.DeleteSong(songID)
}

// SongsByArtist groups the full library by artist. Within each artist the
// songs keep the (artist, title) listing order.
func (a *App) SongsByArtist() (map[string][]domain.Song, error) {
	songs, err := a.store.ListSongs()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]domain.Song)
	for _, s := range songs {
		grouped[s.Artist] = append(grouped[s.Artist], s)
	}
	return grouped, nil
}
