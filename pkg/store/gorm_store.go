package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bandbook/pkg/domain"
)

// GormStore implements Store on a SQL database via GORM.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) a local SQLite database file and runs
// auto-migrations. This is the default SQL backend for single-user installs.
func NewSQLiteStore(path string) (*GormStore, error) {
	return newGormStore(sqlite.Open(path))
}

// NewPostgresStore connects to Postgres and runs auto-migrations.
func NewPostgresStore(dsn string) (*GormStore, error) {
	return newGormStore(postgres.Open(dsn))
}

func newGormStore(dialector gorm.Dialector) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&SongModel{},
		&SetlistModel{},
		&SetlistItemModel{},
		&UserModel{},
		&BandModel{},
		&BandInviteModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// ListSongs returns all songs ordered by (artist, title) ascending.
func (s *GormStore) ListSongs() ([]domain.Song, error) {
	return s.listSongs("artist ASC, title ASC")
}

// ListSongsByArtist returns exact artist matches ordered by title.
func (s *GormStore) ListSongsByArtist(artist string) ([]domain.Song, error) {
	return s.listSongs("title ASC", "artist = ?", artist)
}

func (s *GormStore) listSongs(order string, conds ...any) ([]domain.Song, error) {
	var models []SongModel
	tx := s.db.Order(order)
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Song, 0, len(models))
	for _, m := range models {
		res = append(res, songFromModel(m))
	}
	return res, nil
}

// GetSong retrieves a song by ID.
func (s *GormStore) GetSong(id string) (domain.Song, bool, error) {
	var model SongModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Song{}, false, nil
		}
		return domain.Song{}, false, err
	}
	return songFromModel(model), true, nil
}

// SaveSong inserts or replaces a song by ID.
func (s *GormStore) SaveSong(song domain.Song) error {
	model := songToModel(song)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "artist", "status"}),
	}).Create(&model).Error
}

// SetSongStatus updates only the status column; unknown IDs match no rows.
func (s *GormStore) SetSongStatus(id string, status domain.SongStatus) error {
	return s.db.Model(&SongModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// DeleteSong removes a song by ID.
func (s *GormStore) DeleteSong(id string) error {
	return s.db.Delete(&SongModel{}, "id = ?", id).Error
}

// ListSetlists returns headers ordered by date descending. ISO date strings
// sort chronologically.
func (s *GormStore) ListSetlists() ([]domain.Setlist, error) {
	var models []SetlistModel
	if err := s.db.Order("date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Setlist, 0, len(models))
	for _, m := range models {
		res = append(res, setlistFromModel(m))
	}
	return res, nil
}

// GetSetlist retrieves a header by ID.
func (s *GormStore) GetSetlist(id string) (domain.Setlist, bool, error) {
	var model SetlistModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Setlist{}, false, nil
		}
		return domain.Setlist{}, false, err
	}
	return setlistFromModel(model), true, nil
}

// SaveSetlist inserts or replaces a header by ID.
func (s *GormStore) SaveSetlist(sl domain.Setlist) error {
	model := setlistToModel(sl)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "date", "venue"}),
	}).Create(&model).Error
}

// DeleteSetlist removes a header by ID.
func (s *GormStore) DeleteSetlist(id string) error {
	return s.db.Delete(&SetlistModel{}, "id = ?", id).Error
}

// ListSetlistItems returns the setlist's items ordered by order_index, with
// creation time as the tie-break.
func (s *GormStore) ListSetlistItems(setlistID string) ([]domain.SetlistItem, error) {
	var models []SetlistItemModel
	if err := s.db.Where("setlist_id = ?", setlistID).
		Order("order_index ASC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.SetlistItem, 0, len(models))
	for _, m := range models {
		res = append(res, itemFromModel(m))
	}
	return res, nil
}

// GetSetlistItem retrieves an item by ID.
func (s *GormStore) GetSetlistItem(id string) (domain.SetlistItem, bool, error) {
	var model SetlistItemModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.SetlistItem{}, false, nil
		}
		return domain.SetlistItem{}, false, err
	}
	return itemFromModel(model), true, nil
}

// SaveSetlistItem inserts or replaces an item by ID.
func (s *GormStore) SaveSetlistItem(it domain.SetlistItem) error {
	model := itemToModel(it)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"setlist_id", "song_id", "order_index", "notes", "segue"}),
	}).Create(&model).Error
}

// ReorderSetlistItems renumbers the setlist's items 1..N in one transaction.
func (s *GormStore) ReorderSetlistItems(setlistID string, orderedIDs []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		next := 1
		for _, id := range orderedIDs {
			res := tx.Model(&SetlistItemModel{}).
				Where("id = ? AND setlist_id = ?", id, setlistID).
				Update("order_index", next)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				next++
			}
		}
		return nil
	})
}

// DeleteSetlistItem removes an item by ID.
func (s *GormStore) DeleteSetlistItem(id string) error {
	return s.db.Delete(&SetlistItemModel{}, "id = ?", id).Error
}

// DeleteSetlistItems removes all items for a setlist.
func (s *GormStore) DeleteSetlistItems(setlistID string) error {
	return s.db.Delete(&SetlistItemModel{}, "setlist_id = ?", setlistID).Error
}

// SaveUser inserts or replaces a user by ID.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "password_hash", "band_id", "role"}),
	}).Create(&model).Error
}

// HasUserEmail checks for an exact email match.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by exact email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListUsersByBand returns users whose band_id matches.
func (s *GormStore) ListUsersByBand(bandID string) ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Where("band_id = ?", bandID).
		Order("display_name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// SaveBand inserts or replaces a band by ID.
func (s *GormStore) SaveBand(b domain.Band) error {
	model, err := bandToModel(b)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "members"}),
	}).Create(&model).Error
}

// GetBand retrieves a band by ID.
func (s *GormStore) GetBand(id string) (domain.Band, bool, error) {
	var model BandModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Band{}, false, nil
		}
		return domain.Band{}, false, err
	}
	band, err := bandFromModel(model)
	if err != nil {
		return domain.Band{}, false, err
	}
	return band, true, nil
}

// SaveInvite inserts or replaces an invite by ID.
func (s *GormStore) SaveInvite(inv domain.BandInvite) error {
	model := inviteToModel(inv)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&model).Error
}

// GetInvite retrieves an invite by ID.
func (s *GormStore) GetInvite(id string) (domain.BandInvite, bool, error) {
	var model BandInviteModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.BandInvite{}, false, nil
		}
		return domain.BandInvite{}, false, err
	}
	return inviteFromModel(model), true, nil
}

// ListPendingInvites returns PENDING invites for the email, oldest first.
func (s *GormStore) ListPendingInvites(email string) ([]domain.BandInvite, error) {
	var models []BandInviteModel
	if err := s.db.Where("email = ? AND status = ?", email, string(domain.InvitePending)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BandInvite, 0, len(models))
	for _, m := range models {
		res = append(res, inviteFromModel(m))
	}
	return res, nil
}

func songToModel(s domain.Song) SongModel {
	return SongModel{
		ID:     s.ID,
		Title:  s.Title,
		Artist: s.Artist,
		Status: string(s.Status),
	}
}

func songFromModel(m SongModel) domain.Song {
	return domain.Song{
		ID:     m.ID,
		Title:  m.Title,
		Artist: m.Artist,
		Status: domain.SongStatus(m.Status),
	}
}

func setlistToModel(s domain.Setlist) SetlistModel {
	return SetlistModel{
		ID:    s.ID,
		Name:  s.Name,
		Date:  s.Date.Format(domain.DateFormat),
		Venue: s.Venue,
	}
}

func setlistFromModel(m SetlistModel) domain.Setlist {
	date, _ := time.Parse(domain.DateFormat, m.Date)
	return domain.Setlist{
		ID:    m.ID,
		Name:  m.Name,
		Date:  date,
		Venue: m.Venue,
	}
}

func itemToModel(it domain.SetlistItem) SetlistItemModel {
	return SetlistItemModel{
		ID:         it.ID,
		SetlistID:  it.SetlistID,
		SongID:     it.SongID,
		OrderIndex: it.Order,
		Notes:      it.Notes,
		Segue:      it.Segue,
	}
}

func itemFromModel(m SetlistItemModel) domain.SetlistItem {
	return domain.SetlistItem{
		ID:        m.ID,
		SetlistID: m.SetlistID,
		SongID:    m.SongID,
		Order:     m.OrderIndex,
		Notes:     m.Notes,
		Segue:     m.Segue,
	}
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		BandID:       u.BandID,
		Role:         string(u.Role),
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		BandID:       m.BandID,
		Role:         domain.UserRole(m.Role),
	}
}

func bandToModel(b domain.Band) (BandModel, error) {
	members, err := json.Marshal(b.Members)
	if err != nil {
		return BandModel{}, fmt.Errorf("encode band members: %w", err)
	}
	return BandModel{
		ID:        b.ID,
		Name:      b.Name,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
		Members:   datatypes.JSON(members),
	}, nil
}

func bandFromModel(m BandModel) (domain.Band, error) {
	var members []string
	if len(m.Members) > 0 {
		if err := json.Unmarshal(m.Members, &members); err != nil {
			return domain.Band{}, fmt.Errorf("decode band members: %w", err)
		}
	}
	return domain.Band{
		ID:        m.ID,
		Name:      m.Name,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		Members:   members,
	}, nil
}

func inviteToModel(inv domain.BandInvite) BandInviteModel {
	return BandInviteModel{
		ID:        inv.ID,
		BandID:    inv.BandID,
		Email:     inv.Email,
		InvitedBy: inv.InvitedBy,
		CreatedAt: inv.CreatedAt,
		Status:    string(inv.Status),
	}
}

func inviteFromModel(m BandInviteModel) domain.BandInvite {
	return domain.BandInvite{
		ID:        m.ID,
		BandID:    m.BandID,
		Email:     m.Email,
		InvitedBy: m.InvitedBy,
		CreatedAt: m.CreatedAt,
		Status:    domain.InviteStatus(m.Status),
	}
}
