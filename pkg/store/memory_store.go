package store

import (
	"sort"
	"sync"

	"bandbook/pkg/domain"
)

// MemoryStore keeps all records in-process. A single RWMutex guards every
// collection, so it is safe for concurrent callers; nothing survives a
// restart.
type MemoryStore struct {
	mu sync.RWMutex

	songs     map[string]domain.Song
	songOrder []string

	setlists     map[string]domain.Setlist
	setlistOrder []string

	items     map[string]domain.SetlistItem
	itemOrder []string

	users map[string]domain.User
	email map[string]string // email -> user ID

	bands    map[string]domain.Band
	invites  map[string]domain.BandInvite
	invOrder []string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		songs:    make(map[string]domain.Song),
		setlists: make(map[string]domain.Setlist),
		items:    make(map[string]domain.SetlistItem),
		users:    make(map[string]domain.User),
		email:    make(map[string]string),
		bands:    make(map[string]domain.Band),
		invites:  make(map[string]domain.BandInvite),
	}
}

// ListSongs returns all songs ordered by (artist, title) ascending.
func (m *MemoryStore) ListSongs() ([]domain.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Song, 0, len(m.songOrder))
	for _, id := range m.songOrder {
		if s, ok := m.songs[id]; ok {
			res = append(res, s)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Artist != res[j].Artist {
			return res[i].Artist < res[j].Artist
		}
		return res[i].Title < res[j].Title
	})
	return res, nil
}

// ListSongsByArtist returns exact artist matches ordered by title.
func (m *MemoryStore) ListSongsByArtist(artist string) ([]domain.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Song, 0)
	for _, id := range m.songOrder {
		if s, ok := m.songs[id]; ok && s.Artist == artist {
			res = append(res, s)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Title < res[j].Title })
	return res, nil
}

// GetSong retrieves a song by ID.
func (m *MemoryStore) GetSong(id string) (domain.Song, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.songs[id]
	return s, ok, nil
}

// SaveSong stores or replaces a song and tracks insertion order.
func (m *MemoryStore) SaveSong(s domain.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.songs[s.ID]; !exists {
		m.songOrder = append(m.songOrder, s.ID)
	}
	m.songs[s.ID] = s
	return nil
}

// SetSongStatus updates only the status; unknown IDs are a no-op.
func (m *MemoryStore) SetSongStatus(id string, status domain.SongStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	song, ok := m.songs[id]
	if !ok {
		return nil
	}
	song.Status = status
	m.songs[id] = song
	return nil
}

// DeleteSong removes a song if present.
func (m *MemoryStore) DeleteSong(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.songs, id)
	m.songOrder = removeID(m.songOrder, id)
	return nil
}

// ListSetlists returns headers ordered by date descending.
func (m *MemoryStore) ListSetlists() ([]domain.Setlist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Setlist, 0, len(m.setlistOrder))
	for _, id := range m.setlistOrder {
		if s, ok := m.setlists[id]; ok {
			res = append(res, s)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date.After(res[j].Date) })
	return res, nil
}

// GetSetlist retrieves a header by ID.
func (m *MemoryStore) GetSetlist(id string) (domain.Setlist, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.setlists[id]
	return s, ok, nil
}

// SaveSetlist stores or replaces a header.
func (m *MemoryStore) SaveSetlist(s domain.Setlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.setlists[s.ID]; !exists {
		m.setlistOrder = append(m.setlistOrder, s.ID)
	}
	m.setlists[s.ID] = s
	return nil
}

// DeleteSetlist removes a header. Items are removed separately via
// DeleteSetlistItems; callers delete items first.
func (m *MemoryStore) DeleteSetlist(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.setlists, id)
	m.setlistOrder = removeID(m.setlistOrder, id)
	return nil
}

// ListSetlistItems returns a setlist's items ordered by Order ascending.
// Equal order values keep insertion order.
func (m *MemoryStore) ListSetlistItems(setlistID string) ([]domain.SetlistItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.SetlistItem, 0)
	for _, id := range m.itemOrder {
		if it, ok := m.items[id]; ok && it.SetlistID == setlistID {
			res = append(res, it)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Order < res[j].Order })
	return res, nil
}

// GetSetlistItem retrieves an item by ID.
func (m *MemoryStore) GetSetlistItem(id string) (domain.SetlistItem, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	return it, ok, nil
}

// SaveSetlistItem stores or replaces an item.
func (m *MemoryStore) SaveSetlistItem(it domain.SetlistItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[it.ID]; !exists {
		m.itemOrder = append(m.itemOrder, it.ID)
	}
	m.items[it.ID] = it
	return nil
}

// ReorderSetlistItems rewrites order values to 1..N following orderedIDs.
// IDs that do not belong to the setlist are skipped.
func (m *MemoryStore) ReorderSetlistItems(setlistID string, orderedIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := 1
	for _, id := range orderedIDs {
		it, ok := m.items[id]
		if !ok || it.SetlistID != setlistID {
			continue
		}
		it.Order = next
		m.items[id] = it
		next++
	}
	return nil
}

// DeleteSetlistItem removes an item if present.
func (m *MemoryStore) DeleteSetlistItem(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	m.itemOrder = removeID(m.itemOrder, id)
	return nil
}

// DeleteSetlistItems removes every item belonging to the setlist.
func (m *MemoryStore) DeleteSetlistItems(setlistID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	filtered := m.itemOrder[:0]
	for _, id := range m.itemOrder {
		if it, ok := m.items[id]; ok && it.SetlistID == setlistID {
			delete(m.items, id)
			continue
		}
		filtered = append(filtered, id)
	}
	m.itemOrder = filtered
	return nil
}

// SaveUser registers or replaces a user and keeps the email index current.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.users[u.ID]; ok && prev.Email != u.Email {
		delete(m.email, prev.Email)
	}
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks for an exact, case-sensitive email match.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by exact email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// ListUsersByBand returns users whose BandID matches.
func (m *MemoryStore) ListUsersByBand(bandID string) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0)
	for _, u := range m.users {
		if u.BandID == bandID {
			res = append(res, u)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].DisplayName < res[j].DisplayName })
	return res, nil
}

// SaveBand stores or replaces a band.
func (m *MemoryStore) SaveBand(b domain.Band) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bands[b.ID] = b
	return nil
}

// GetBand retrieves a band by ID.
func (m *MemoryStore) GetBand(id string) (domain.Band, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bands[id]
	return b, ok, nil
}

// SaveInvite stores or replaces an invite and tracks insertion order.
func (m *MemoryStore) SaveInvite(inv domain.BandInvite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.invites[inv.ID]; !exists {
		m.invOrder = append(m.invOrder, inv.ID)
	}
	m.invites[inv.ID] = inv
	return nil
}

// GetInvite retrieves an invite by ID.
func (m *MemoryStore) GetInvite(id string) (domain.BandInvite, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invites[id]
	return inv, ok, nil
}

// ListPendingInvites returns PENDING invites for the email in creation order.
func (m *MemoryStore) ListPendingInvites(email string) ([]domain.BandInvite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BandInvite, 0)
	for _, id := range m.invOrder {
		if inv, ok := m.invites[id]; ok && inv.Email == email && inv.Status == domain.InvitePending {
			res = append(res, inv)
		}
	}
	return res, nil
}

func removeID(ids []string, id string) []string {
	filtered := ids[:0]
	for _, item := range ids {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
