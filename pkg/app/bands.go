package app

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"bandbook/internal/util"
	"bandbook/pkg/domain"
)

// CreateBand creates a band with the creator as its only member and
// promotes the creator to admin of it.
func (a *App) CreateBand(name, createdBy string) (domain.Band, error) {
	band := domain.Band{
		ID:        util.NewID(),
		Name:      strings.TrimSpace(name),
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		Members:   []string{createdBy},
	}
	if err := a.store.SaveBand(band); err != nil {
		return domain.Band{}, fmt.Errorf("save band: %w", err)
	}
	user, ok, err := a.store.GetUserByID(createdBy)
	if err != nil {
		return domain.Band{}, fmt.Errorf("fetch creator: %w", err)
	}
	if ok {
		user.BandID = band.ID
		user.Role = domain.RoleAdmin
		if err := a.store.SaveUser(user); err != nil {
			return domain.Band{}, fmt.Errorf("promote creator: %w", err)
		}
	}
	slog.Debug("band created", "bandId", band.ID, "createdBy", createdBy)
	return band, nil
}

// Band retrieves a band by ID.
func (a *App) Band(id string) (domain.Band, bool, error) {
	return a.store.GetBand(id)
}

// UpdateBand upserts the band by ID.
func (a *App) UpdateBand(band domain.Band) (domain.Band, error) {
	if err := a.store.SaveBand(band); err != nil {
		return domain.Band{}, fmt.Errorf("save band: %w", err)
	}
	return band, nil
}

// BandMembers returns the users whose band is bandID, or an empty slice
// when the band is unknown.
func (a *App) BandMembers(bandID string) ([]domain.User, error) {
	_, ok, err := a.store.GetBand(bandID)
	if err != nil {
		return nil, fmt.Errorf("fetch band: %w", err)
	}
	if !ok {
		return []domain.User{}, nil
	}
	return a.store.ListUsersByBand(bandID)
}

// InviteToBand creates a pending invite for the email. The inviter must be
// a member of the band, and only one pending invite per email and band is
// allowed.
func (a *App) InviteToBand(bandID, email, invitedBy string) (domain.BandInvite, error) {
	band, ok, err := a.store.GetBand(bandID)
	if err != nil {
		return domain.BandInvite{}, fmt.Errorf("fetch band: %w", err)
	}
	if !ok {
		return domain.BandInvite{}, ErrBandNotFound
	}
	if !slices.Contains(band.Members, invitedBy) {
		return domain.BandInvite{}, ErrNotBandMember
	}
	email = strings.TrimSpace(email)
	pending, err := a.store.ListPendingInvites(email)
	if err != nil {
		return domain.BandInvite{}, fmt.Errorf("check pending invites: %w", err)
	}
	for _, inv := range pending {
		if inv.BandID == bandID {
			return domain.BandInvite{}, ErrInviteAlreadyPending
		}
	}
	invite := domain.BandInvite{
		ID:        util.NewID(),
		BandID:    bandID,
		Email:     email,
		InvitedBy: invitedBy,
		CreatedAt: time.Now().UTC(),
		Status:    domain.InvitePending,
	}
	if err := a.store.SaveInvite(invite); err != nil {
		return domain.BandInvite{}, fmt.Errorf("save invite: %w", err)
	}
	return invite, nil
}

// RespondToInvite accepts or declines a pending invite. The invited email
// must belong to a registered user by response time. Responding to an
// already answered invite fails with ErrInviteAlreadyAnswered.
func (a *App) RespondToInvite(inviteID string, accept bool) error {
	invite, ok, err := a.store.GetInvite(inviteID)
	if err != nil {
		return fmt.Errorf("fetch invite: %w", err)
	}
	if !ok {
		return ErrInviteNotFound
	}
	if invite.Status != domain.InvitePending {
		return ErrInviteAlreadyAnswered
	}
	user, ok, err := a.store.GetUserByEmail(invite.Email)
	if err != nil {
		return fmt.Errorf("fetch invited user: %w", err)
	}
	if !ok {
		return ErrInviteUserNotFound
	}

	if !accept {
		invite.Status = domain.InviteDeclined
		if err := a.store.SaveInvite(invite); err != nil {
			return fmt.Errorf("save invite: %w", err)
		}
		return nil
	}

	band, ok, err := a.store.GetBand(invite.BandID)
	if err != nil {
		return fmt.Errorf("fetch band: %w", err)
	}
	if !ok {
		return ErrBandNotFound
	}
	if !slices.Contains(band.Members, user.ID) {
		band.Members = append(band.Members, user.ID)
		if err := a.store.SaveBand(band); err != nil {
			return fmt.Errorf("save band: %w", err)
		}
	}
	user.BandID = band.ID
	user.Role = domain.RoleMember
	if err := a.store.SaveUser(user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	invite.Status = domain.InviteAccepted
	if err := a.store.SaveInvite(invite); err != nil {
		return fmt.Errorf("save invite: %w", err)
	}
	slog.Debug("invite accepted", "inviteId", invite.ID, "bandId", band.ID, "userId", user.ID)
	return nil
}

// PendingInvites returns the PENDING invites addressed to an email.
func (a *App) PendingInvites(email string) ([]domain.BandInvite, error) {
	return a.store.ListPendingInvites(strings.TrimSpace(email))
}
