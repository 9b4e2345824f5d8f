package store

import "bandbook/pkg/domain"

// SongStore holds the song library.
type SongStore interface {
	// ListSongs returns all songs ordered by (artist, title) ascending.
	ListSongs() ([]domain.Song, error)
	// ListSongsByArtist returns exact artist matches ordered by title.
	ListSongsByArtist(artist string) ([]domain.Song, error)
	GetSong(id string) (domain.Song, bool, error)
	// SaveSong inserts or replaces by ID.
	SaveSong(domain.Song) error
	// SetSongStatus updates only the status field; unknown IDs are a no-op.
	SetSongStatus(id string, status domain.SongStatus) error
	DeleteSong(id string) error
}

// SetlistStore holds setlist headers. Items live in SetlistItemStore.
type SetlistStore interface {
	// ListSetlists returns headers ordered by date descending.
	ListSetlists() ([]domain.Setlist, error)
	GetSetlist(id string) (domain.Setlist, bool, error)
	SaveSetlist(domain.Setlist) error
	DeleteSetlist(id string) error
}

// SetlistItemStore holds the ordered song entries of each setlist.
type SetlistItemStore interface {
	// ListSetlistItems returns a setlist's items ordered by Order ascending,
	// with insertion order as the tie-break.
	ListSetlistItems(setlistID string) ([]domain.SetlistItem, error)
	GetSetlistItem(id string) (domain.SetlistItem, bool, error)
	SaveSetlistItem(domain.SetlistItem) error
	// ReorderSetlistItems rewrites the order of a setlist's items to
	// 1..len(orderedIDs) following the given sequence, atomically where the
	// backend supports it.
	ReorderSetlistItems(setlistID string, orderedIDs []string) error
	DeleteSetlistItem(id string) error
	DeleteSetlistItems(setlistID string) error
}

// UserStore holds user accounts.
type UserStore interface {
	// SaveUser inserts or replaces by ID.
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)
	ListUsersByBand(bandID string) ([]domain.User, error)
}

// BandStore holds bands and their invites.
type BandStore interface {
	SaveBand(domain.Band) error
	GetBand(id string) (domain.Band, bool, error)
	SaveInvite(domain.BandInvite) error
	GetInvite(id string) (domain.BandInvite, bool, error)
	// ListPendingInvites returns PENDING invites addressed to the email.
	ListPendingInvites(email string) ([]domain.BandInvite, error)
}

// Store aggregates all entity stores. Both the in-memory and the SQL-backed
// implementation satisfy it.
type Store interface {
	SongStore
	SetlistStore
	SetlistItemStore
	UserStore
	BandStore
}

// SessionStore persists the signed-in session token.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
