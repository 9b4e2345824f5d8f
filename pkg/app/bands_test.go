package app

import (
	"errors"
	"slices"
	"testing"

	"bandbook/pkg/domain"
)

func TestCreateBandPromotesCreator(t *testing.T) {
	a := newTestApp(t)
	creator, _ := a.SignUp("ann@example.com", "pw", "Ann")

	band, err := a.CreateBand("The Testers", creator.ID)
	if err != nil {
		t.Fatalf("create band: %v", err)
	}
	if len(band.Members) != 1 || band.Members[0] != creator.ID {
		t.Fatalf("members = %+v, want just the creator", band.Members)
	}

	current, ok := a.CurrentUser()
	if !ok || current.BandID != band.ID || current.Role != domain.RoleAdmin {
		t.Fatalf("creator not promoted: %+v", current)
	}
}

func TestInviteAcceptFlow(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)
	invitee, _ := a.SignUp("new@example.com", "pw", "Newbie")

	invite, err := a.InviteToBand(band.ID, "new@example.com", admin.ID)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if invite.Status != domain.InvitePending {
		t.Fatalf("invite status = %q, want PENDING", invite.Status)
	}

	pending, err := a.PendingInvites("new@example.com")
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending invites = %+v err=%v, want one", pending, err)
	}

	if err := a.RespondToInvite(invite.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	updatedBand, ok, _ := a.Band(band.ID)
	if !ok {
		t.Fatalf("band disappeared")
	}
	joined := 0
	for _, m := range updatedBand.Members {
		if m == invitee.ID {
			joined++
		}
	}
	if joined != 1 {
		t.Fatalf("invitee appears %d times in members, want exactly once", joined)
	}

	updatedInvite, _, _ := a.store.GetInvite(invite.ID)
	if updatedInvite.Status != domain.InviteAccepted {
		t.Fatalf("invite status = %q, want ACCEPTED", updatedInvite.Status)
	}

	members, err := a.BandMembers(band.ID)
	if err != nil {
		t.Fatalf("band members: %v", err)
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	if !slices.Contains(ids, admin.ID) || !slices.Contains(ids, invitee.ID) {
		t.Fatalf("members = %v, want admin and invitee", ids)
	}
}

func TestRespondToInviteTwiceFails(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)
	_, _ = a.SignUp("new@example.com", "pw", "Newbie")

	invite, _ := a.InviteToBand(band.ID, "new@example.com", admin.ID)
	if err := a.RespondToInvite(invite.ID, true); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if err := a.RespondToInvite(invite.ID, true); !errors.Is(err, ErrInviteAlreadyAnswered) {
		t.Fatalf("expected ErrInviteAlreadyAnswered, got %v", err)
	}
}

func TestDeclineInvite(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)
	invitee, _ := a.SignUp("new@example.com", "pw", "Newbie")

	invite, _ := a.InviteToBand(band.ID, "new@example.com", admin.ID)
	if err := a.RespondToInvite(invite.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}

	updatedBand, _, _ := a.Band(band.ID)
	if slices.Contains(updatedBand.Members, invitee.ID) {
		t.Fatalf("declined invitee must not join the band")
	}
	pending, _ := a.PendingInvites("new@example.com")
	if len(pending) != 0 {
		t.Fatalf("declined invite still pending: %+v", pending)
	}
}

func TestInviteRequiresMembership(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)
	outsider, _ := a.SignUp("out@example.com", "pw", "Out")

	if _, err := a.InviteToBand(band.ID, "new@example.com", outsider.ID); !errors.Is(err, ErrNotBandMember) {
		t.Fatalf("expected ErrNotBandMember, got %v", err)
	}
	if _, err := a.InviteToBand("missing", "new@example.com", admin.ID); !errors.Is(err, ErrBandNotFound) {
		t.Fatalf("expected ErrBandNotFound, got %v", err)
	}
}

func TestInviteDuplicatePendingRejected(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)

	if _, err := a.InviteToBand(band.ID, "new@example.com", admin.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := a.InviteToBand(band.ID, "new@example.com", admin.ID); !errors.Is(err, ErrInviteAlreadyPending) {
		t.Fatalf("expected ErrInviteAlreadyPending, got %v", err)
	}
}

func TestRespondToInviteUnknownUserOrInvite(t *testing.T) {
	a := newTestApp(t)
	admin, _ := a.SignUp("admin@example.com", "pw", "Admin")
	band, _ := a.CreateBand("The Testers", admin.ID)

	if err := a.RespondToInvite("missing", true); !errors.Is(err, ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}

	// Invite addressed to an email nobody registered with.
	invite, _ := a.InviteToBand(band.ID, "ghost@example.com", admin.ID)
	if err := a.RespondToInvite(invite.ID, true); !errors.Is(err, ErrInviteUserNotFound) {
		t.Fatalf("expected ErrInviteUserNotFound, got %v", err)
	}
}

func TestBandMembersUnknownBandIsEmpty(t *testing.T) {
	a := newTestApp(t)
	members, err := a.BandMembers("missing")
	if err != nil {
		t.Fatalf("band members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected empty result, got %+v", members)
	}
}
