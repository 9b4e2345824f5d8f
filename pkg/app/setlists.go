package app

import (
	"fmt"
	"strings"
	"time"

	"bandbook/internal/util"
	"bandbook/pkg/domain"
)

var timeNow = time.Now

// SetlistUpdate carries a partial header update; nil fields keep their
// current value.
type SetlistUpdate struct {
	Name  *string
	Date  *time.Time
	Venue *string
}

// SetlistItemUpdate carries a partial item update; nil fields keep their
// current value.
type SetlistItemUpdate struct {
	Notes *string
	Segue *string
}

// ListSetlists returns headers only, ordered by date descending.
func (a *App) ListSetlists() ([]domain.Setlist, error) {
	return a.store.ListSetlists()
}

// GetSetlist returns the header with its items attached, sorted by order
// ascending. ok is false when the setlist does not exist.
func (a *App) GetSetlist(id string) (domain.SetlistDetail, bool, error) {
	header, ok, err := a.store.GetSetlist(id)
	if err != nil || !ok {
		return domain.SetlistDetail{}, false, err
	}
	items, err := a.store.ListSetlistItems(id)
	if err != nil {
		return domain.SetlistDetail{}, false, fmt.Errorf("load setlist items: %w", err)
	}
	return domain.SetlistDetail{Setlist: header, Items: items}, true, nil
}

// CreateSetlist trims the name and venue, assigns a fresh ID and stores an
// empty setlist.
func (a *App) CreateSetlist(name string, date time.Time, venue string) (domain.Setlist, error) {
	setlist := domain.Setlist{
		ID:    util.NewID(),
		Name:  strings.TrimSpace(name),
		Date:  date,
		Venue: strings.TrimSpace(venue),
	}
	if err := a.store.SaveSetlist(setlist); err != nil {
		return domain.Setlist{}, fmt.Errorf("save setlist: %w", err)
	}
	return setlist, nil
}

// UpdateSetlist applies a partial header update and returns the reloaded
// detail. ok is false when the setlist does not exist.
func (a *App) UpdateSetlist(id string, upd SetlistUpdate) (domain.SetlistDetail, bool, error) {
	existing, ok, err := a.store.GetSetlist(id)
	if err != nil || !ok {
		return domain.SetlistDetail{}, false, err
	}
	if upd.Name != nil {
		existing.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Date != nil {
		existing.Date = *upd.Date
	}
	if upd.Venue != nil {
		existing.Venue = strings.TrimSpace(*upd.Venue)
	}
	if err := a.store.SaveSetlist(existing); err != nil {
		return domain.SetlistDetail{}, false, fmt.Errorf("save setlist: %w", err)
	}
	return a.GetSetlist(id)
}

// CopySetlist duplicates a setlist under a new name, date and venue. Items
// get fresh IDs and contiguous order 1..N but keep song, notes and segue.
// ok is false when the source does not exist.
func (a *App) CopySetlist(id, newName string, newDate time.Time, newVenue string) (domain.SetlistDetail, bool, error) {
	source, ok, err := a.GetSetlist(id)
	if err != nil || !ok {
		return domain.SetlistDetail{}, false, err
	}
	created, err := a.CreateSetlist(newName, newDate, newVenue)
	if err != nil {
		return domain.SetlistDetail{}, false, err
	}
	for _, item := range source.Items {
		if _, err := a.AddSongToSetlist(created.ID, item.SongID, item.Notes, item.Segue); err != nil {
			return domain.SetlistDetail{}, false, err
		}
	}
	return a.GetSetlist(created.ID)
}

// AddSongToSetlist appends a song to the setlist with the next order value
// (max existing + 1, so the first item gets 1). Neither the setlist nor the
// song is validated to exist; callers own referential integrity.
func (a *App) AddSongToSetlist(setlistID, songID, notes, segue string) (domain.SetlistItem, error) {
	existing, err := a.store.ListSetlistItems(setlistID)
	if err != nil {
		return domain.SetlistItem{}, fmt.Errorf("load setlist items: %w", err)
	}
	nextOrder := 0
	for _, it := range existing {
		if it.Order > nextOrder {
			nextOrder = it.Order
		}
	}
	nextOrder++

	item := domain.SetlistItem{
		ID:        util.NewID(),
		SetlistID: setlistID,
		SongID:    songID,
		Order:     nextOrder,
		Notes:     notes,
		Segue:     segue,
	}
	if err := a.store.SaveSetlistItem(item); err != nil {
		return domain.SetlistItem{}, fmt.Errorf("save setlist item: %w", err)
	}
	return item, nil
}

// UpdateSetlistItem applies a partial update to an item's notes and segue.
// ok is false when the item does not exist.
func (a *App) UpdateSetlistItem(itemID string, upd SetlistItemUpdate) (domain.SetlistItem, bool, error) {
	existing, ok, err := a.store.GetSetlistItem(itemID)
	if err != nil || !ok {
		return domain.SetlistItem{}, false, err
	}
	if upd.Notes != nil {
		existing.Notes = *upd.Notes
	}
	if upd.Segue != nil {
		existing.Segue = *upd.Segue
	}
	if err := a.store.SaveSetlistItem(existing); err != nil {
		return domain.SetlistItem{}, false, fmt.Errorf("save setlist item: %w", err)
	}
	return existing, true, nil
}

// ReorderSetlistItem moves an item to the given 1-based position and
// renumbers the whole setlist contiguously 1..N. Out-of-range positions
// clamp to the ends; unknown items are a no-op.
func (a *App) ReorderSetlistItem(itemID string, newOrder int) error {
	item, ok, err := a.store.GetSetlistItem(itemID)
	if err != nil || !ok {
		return err
	}
	items, err := a.store.ListSetlistItems(item.SetlistID)
	if err != nil {
		return fmt.Errorf("load setlist items: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			ids = append(ids, it.ID)
		}
	}
	pos := newOrder - 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(ids) {
		pos = len(ids)
	}
	ids = append(ids[:pos], append([]string{itemID}, ids[pos:]...)...)

	return a.store.ReorderSetlistItems(item.SetlistID, ids)
}

// RemoveSetlistItem deletes a single item.
func (a *App) RemoveSetlistItem(itemID string) error {
	return a.store.DeleteSetlistItem(itemID)
}

// DeleteSetlist removes the setlist's items first and then the header, so a
// concurrent reader never sees orphaned items.
func (a *App) DeleteSetlist(setlistID string) error {
	if err := a.store.DeleteSetlistItems(setlistID); err != nil {
		return fmt.Errorf("delete setlist items: %w", err)
	}
	if err := a.store.DeleteSetlist(setlistID); err != nil {
		return fmt.Errorf("delete setlist: %w", err)
	}
	return nil
}

// SetlistsOn returns the headers scheduled on the given calendar date.
func (a *App) SetlistsOn(date time.Time) ([]domain.Setlist, error) {
	all, err := a.store.ListSetlists()
	if err != nil {
		return nil, err
	}
	y, m, d := date.Date()
	res := make([]domain.Setlist, 0)
	for _, s := range all {
		sy, sm, sd := s.Date.Date()
		if sy == y && sm == m && sd == d {
			res = append(res, s)
		}
	}
	return res, nil
}

// UpcomingSetlists returns headers dated today or later, soonest first.
func (a *App) UpcomingSetlists() ([]domain.Setlist, error) {
	all, err := a.store.ListSetlists()
	if err != nil {
		return nil, err
	}
	today := startOfDay(timeNow())
	res := make([]domain.Setlist, 0)
	// ListSetlists is date-descending; walk backwards for soonest-first.
	for i := len(all) - 1; i >= 0; i-- {
		if !all[i].Date.Before(today) {
			res = append(res, all[i])
		}
	}
	return res, nil
}

// PastSetlists returns headers dated before today, most recent first.
func (a *App) PastSetlists() ([]domain.Setlist, error) {
	all, err := a.store.ListSetlists()
	if err != nil {
		return nil, err
	}
	today := startOfDay(timeNow())
	res := make([]domain.Setlist, 0)
	for _, s := range all {
		if s.Date.Before(today) {
			res = append(res, s)
		}
	}
	return res, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return domain.Date(y, m, d)
}
