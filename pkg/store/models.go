package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Dates are stored as ISO-8601 date
// strings, enums by their textual name.
type SongModel struct {
	ID        string    `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Artist    string    `gorm:"not null;index"`
	Status    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type SetlistModel struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Date      string    `gorm:"not null;index"`
	Venue     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type SetlistItemModel struct {
	ID         string `gorm:"primaryKey"`
	SetlistID  string `gorm:"not null;index"`
	SongID     string `gorm:"not null"`
	OrderIndex int    `gorm:"not null"`
	Notes      string
	Segue      string
	CreatedAt  time.Time `gorm:"not null;index"`
}

type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	DisplayName  string `gorm:"not null"`
	PasswordHash string
	BandID       string    `gorm:"index"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type BandModel struct {
	ID        string         `gorm:"primaryKey"`
	Name      string         `gorm:"not null"`
	CreatedBy string         `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
	Members   datatypes.JSON `gorm:"not null"`
}

type BandInviteModel struct {
	ID        string    `gorm:"primaryKey"`
	BandID    string    `gorm:"not null;index"`
	Email     string    `gorm:"not null;index"`
	InvitedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	Status    string    `gorm:"not null"`
}
