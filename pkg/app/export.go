package app

import "bandbook/pkg/domain"

// SetlistExporter is implemented by the platform layers. The core hands a
// loaded setlist plus the song library through and stays out of formatting
// and sharing.
type SetlistExporter interface {
	ExportToText(setlist domain.SetlistDetail, songs []domain.Song) string
	ShareViaEmail(setlist domain.SetlistDetail, songs []domain.Song, recipient string) error
}

// ExportSetlist loads the setlist and the song library and renders the
// text block via the platform exporter. ok is false when the setlist does
// not exist.
func (a *App) ExportSetlist(exporter SetlistExporter, setlistID string) (string, bool, error) {
	detail, ok, err := a.GetSetlist(setlistID)
	if err != nil || !ok {
		return "", false, err
	}
	songs, err := a.store.ListSongs()
	if err != nil {
		return "", false, err
	}
	return exporter.ExportToText(detail, songs), true, nil
}
