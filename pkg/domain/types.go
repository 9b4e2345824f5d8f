package domain

import "time"

// DateFormat is the storage encoding for calendar dates.
const DateFormat = "2006-01-02"

type SongStatus string

const (
	StatusKnown   SongStatus = "KNOWN"
	StatusToLearn SongStatus = "TO_LEARN"
)

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "MEMBER"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteDeclined InviteStatus = "DECLINED"
)

type Song struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Artist string     `json:"artist"`
	Status SongStatus `json:"status"`
}

// Setlist is the header record only. Items are joined in separately via
// SetlistDetail; listing many setlists never loads them.
type Setlist struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Venue string    `json:"venue"`
}

// SetlistDetail is a setlist with its items attached, sorted by Order.
type SetlistDetail struct {
	Setlist
	Items []SetlistItem `json:"items"`
}

type SetlistItem struct {
	ID        string `json:"id"`
	SetlistID string `json:"setlistId"`
	SongID    string `json:"songId"`
	Order     int    `json:"order"`
	Notes     string `json:"notes"`
	Segue     string `json:"segue"`
}

type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"displayName"`
	PasswordHash string   `json:"-"`
	BandID       string   `json:"bandId,omitempty"`
	Role         UserRole `json:"role"`
}

type Band struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	Members   []string  `json:"members"`
}

type BandInvite struct {
	ID        string       `json:"id"`
	BandID    string       `json:"bandId"`
	Email     string       `json:"email"`
	InvitedBy string       `json:"invitedBy"`
	CreatedAt time.Time    `json:"createdAt"`
	Status    InviteStatus `json:"status"`
}

// Date normalizes to a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
