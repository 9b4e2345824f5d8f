package app

import (
	"testing"
	"time"

	"bandbook/pkg/domain"
)

func TestCreateSetlistStartsEmptyAndListsOnce(t *testing.T) {
	a := newTestApp(t)

	created, err := a.CreateSetlist("  Test Setlist ", domain.Date(2024, time.January, 15), " Test Venue ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Test Setlist" || created.Venue != "Test Venue" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}

	detail, ok, err := a.GetSetlist(created.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("new setlist should have no items, got %+v", detail.Items)
	}

	lists, err := a.ListSetlists()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count := 0
	for _, sl := range lists {
		if sl.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("setlist appears %d times, want exactly once", count)
	}
}

func TestAddSongToSetlistAssignsIncreasingOrderFromOne(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")

	for i, songID := range []string{"s-b", "s-a", "s-c"} {
		item, err := a.AddSongToSetlist(sl.ID, songID, "", "")
		if err != nil {
			t.Fatalf("add item: %v", err)
		}
		if item.Order != i+1 {
			t.Fatalf("item order = %d, want %d", item.Order, i+1)
		}
	}
}

func TestGetSetlistReturnsItemsSortedByOrder(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")
	first, _ := a.AddSongToSetlist(sl.ID, "s1", "opening", "")
	second, _ := a.AddSongToSetlist(sl.ID, "s2", "", "straight into")

	detail, ok, err := a.GetSetlist(sl.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(detail.Items) != 2 || detail.Items[0].ID != first.ID || detail.Items[1].ID != second.ID {
		t.Fatalf("unexpected item order: %+v", detail.Items)
	}
	if detail.Items[0].Notes != "opening" || detail.Items[1].Segue != "straight into" {
		t.Fatalf("notes/segue lost: %+v", detail.Items)
	}
}

func TestUpdateSetlistPartialUpdate(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Original", domain.Date(2024, time.June, 1), "Club")

	newName := "Renamed"
	detail, ok, err := a.UpdateSetlist(sl.ID, SetlistUpdate{Name: &newName})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if detail.Name != "Renamed" {
		t.Fatalf("name = %q, want Renamed", detail.Name)
	}
	if detail.Venue != "Club" || !detail.Date.Equal(domain.Date(2024, time.June, 1)) {
		t.Fatalf("untouched fields changed: %+v", detail.Setlist)
	}
}

func TestUpdateSetlistUnknownID(t *testing.T) {
	a := newTestApp(t)
	name := "x"
	if _, ok, err := a.UpdateSetlist("missing", SetlistUpdate{Name: &name}); ok || err != nil {
		t.Fatalf("expected ok=false for unknown id, got ok=%v err=%v", ok, err)
	}
}

func TestCopySetlistPreservesItemsWithFreshIDs(t *testing.T) {
	a := newTestApp(t)
	src, _ := a.CreateSetlist("Source", domain.Date(2024, time.June, 1), "Club")
	_, _ = a.AddSongToSetlist(src.ID, "s1", "note1", "segue1")
	_, _ = a.AddSongToSetlist(src.ID, "s2", "note2", "")

	copied, ok, err := a.CopySetlist(src.ID, "Copy", domain.Date(2024, time.July, 2), "Hall")
	if err != nil || !ok {
		t.Fatalf("copy: ok=%v err=%v", ok, err)
	}
	if copied.Name != "Copy" || copied.Venue != "Hall" {
		t.Fatalf("unexpected copy header: %+v", copied.Setlist)
	}

	source, _, _ := a.GetSetlist(src.ID)
	if len(copied.Items) != len(source.Items) {
		t.Fatalf("copy has %d items, source has %d", len(copied.Items), len(source.Items))
	}
	srcIDs := map[string]bool{}
	for _, it := range source.Items {
		srcIDs[it.ID] = true
	}
	for i, it := range copied.Items {
		if srcIDs[it.ID] {
			t.Fatalf("copied item reuses source id %q", it.ID)
		}
		if it.SongID != source.Items[i].SongID || it.Notes != source.Items[i].Notes || it.Segue != source.Items[i].Segue {
			t.Fatalf("copied item diverges at %d: %+v vs %+v", i, it, source.Items[i])
		}
		if it.Order != i+1 {
			t.Fatalf("copied item order = %d, want %d", it.Order, i+1)
		}
	}
}

func TestCopySetlistUnknownSource(t *testing.T) {
	a := newTestApp(t)
	if _, ok, err := a.CopySetlist("missing", "Copy", domain.Date(2024, time.July, 2), "Hall"); ok || err != nil {
		t.Fatalf("expected ok=false, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateSetlistItemPartialUpdate(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")
	item, _ := a.AddSongToSetlist(sl.ID, "s1", "old notes", "old segue")

	notes := "new notes"
	updated, ok, err := a.UpdateSetlistItem(item.ID, SetlistItemUpdate{Notes: &notes})
	if err != nil || !ok {
		t.Fatalf("update item: ok=%v err=%v", ok, err)
	}
	if updated.Notes != "new notes" || updated.Segue != "old segue" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	if _, ok, _ := a.UpdateSetlistItem("missing", SetlistItemUpdate{Notes: &notes}); ok {
		t.Fatalf("expected ok=false for unknown item")
	}
}

func TestReorderSetlistItemRenumbersContiguously(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")
	i1, _ := a.AddSongToSetlist(sl.ID, "s1", "", "")
	i2, _ := a.AddSongToSetlist(sl.ID, "s2", "", "")
	i3, _ := a.AddSongToSetlist(sl.ID, "s3", "", "")

	// Move the last item to the front.
	if err := a.ReorderSetlistItem(i3.ID, 1); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	detail, _, _ := a.GetSetlist(sl.ID)
	for i, wantID := range []string{i3.ID, i1.ID, i2.ID} {
		if detail.Items[i].ID != wantID {
			t.Fatalf("items[%d].ID = %q, want %q", i, detail.Items[i].ID, wantID)
		}
		if detail.Items[i].Order != i+1 {
			t.Fatalf("items[%d].Order = %d, want %d", i, detail.Items[i].Order, i+1)
		}
	}

	// Out-of-range positions clamp instead of failing.
	if err := a.ReorderSetlistItem(i3.ID, 99); err != nil {
		t.Fatalf("reorder clamp: %v", err)
	}
	detail, _, _ = a.GetSetlist(sl.ID)
	if detail.Items[2].ID != i3.ID || detail.Items[2].Order != 3 {
		t.Fatalf("expected item clamped to the end, got %+v", detail.Items)
	}

	// Unknown items are a no-op.
	if err := a.ReorderSetlistItem("missing", 1); err != nil {
		t.Fatalf("reorder unknown item: %v", err)
	}
}

func TestDeleteSetlistCascades(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")
	_, _ = a.AddSongToSetlist(sl.ID, "s1", "", "")
	_, _ = a.AddSongToSetlist(sl.ID, "s2", "", "")

	if err := a.DeleteSetlist(sl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	lists, _ := a.ListSetlists()
	for _, l := range lists {
		if l.ID == sl.ID {
			t.Fatalf("setlist still listed after delete")
		}
	}
	if _, ok, _ := a.GetSetlist(sl.ID); ok {
		t.Fatalf("setlist still loadable after delete")
	}
}

func TestRemoveSetlistItem(t *testing.T) {
	a := newTestApp(t)
	sl, _ := a.CreateSetlist("Gig", domain.Date(2024, time.June, 1), "Club")
	item, _ := a.AddSongToSetlist(sl.ID, "s1", "", "")

	if err := a.RemoveSetlistItem(item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	detail, _, _ := a.GetSetlist(sl.ID)
	if len(detail.Items) != 0 {
		t.Fatalf("expected no items, got %+v", detail.Items)
	}
}

func TestUpcomingAndPastSetlists(t *testing.T) {
	a := newTestApp(t)
	orig := timeNow
	timeNow = func() time.Time { return domain.Date(2024, time.June, 15) }
	defer func() { timeNow = orig }()

	past, _ := a.CreateSetlist("Past", domain.Date(2024, time.June, 1), "V")
	today, _ := a.CreateSetlist("Today", domain.Date(2024, time.June, 15), "V")
	future, _ := a.CreateSetlist("Future", domain.Date(2024, time.July, 1), "V")

	upcoming, err := a.UpcomingSetlists()
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != today.ID || upcoming[1].ID != future.ID {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}

	pastLists, err := a.PastSetlists()
	if err != nil {
		t.Fatalf("past: %v", err)
	}
	if len(pastLists) != 1 || pastLists[0].ID != past.ID {
		t.Fatalf("unexpected past: %+v", pastLists)
	}

	onDate, err := a.SetlistsOn(domain.Date(2024, time.June, 15))
	if err != nil {
		t.Fatalf("on date: %v", err)
	}
	if len(onDate) != 1 || onDate[0].ID != today.ID {
		t.Fatalf("unexpected on-date result: %+v", onDate)
	}
}
