package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/core/domain"
)

func TestCreateMemberSequentialIDs(t *testing.T) {
	db := testDB(t)
	svc := newTestMemberService(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		member, err := svc.Create(ctx, &MemberInput{
			StationID:  "01",
			FirstName:  "Member",
			LastName:   fmt.Sprintf("Number%d", i),
			DateJoined: "2024-01-15",
		}, "tester")
		if err != nil {
			t.Fatalf("create member %d: %v", i, err)
		}
		want := fmt.Sprintf("NFC%04d", i)
		if member.MemberID != want {
			t.Errorf("member %d: ID = %q, want %q", i, member.MemberID, want)
		}
		if !member.IsActive {
			t.Errorf("member %d: not active on creation", i)
		}
	}
}

func TestCreateMemberMissingCounter(t *testing.T) {
	db := testDB(t)
	if err := db.Where("setting_key = ?", domain.SettingNextMemberNumber).
		Delete(&models.SystemSetting{}).Error; err != nil {
		t.Fatalf("delete counter: %v", err)
	}

	_, err := newTestMemberService(db).Create(context.Background(), &MemberInput{
		StationID:  "01",
		FirstName:  "No",
		LastName:   "Counter",
		DateJoined: "2024-01-15",
	}, "tester")
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}

	// the failed allocation must not leave a member behind
	var n int64
	db.Model(&models.Member{}).Count(&n)
	if n != 0 {
		t.Errorf("members after failed create = %d, want 0", n)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	db := testDB(t)
	svc := newTestMemberService(db)
	ctx := context.Background()

	cases := []struct {
		name  string
		input MemberInput
		want  error
	}{
		{"missing station", MemberInput{FirstName: "A", LastName: "B", DateJoined: "2024-01-15"}, domain.ErrInvalidInput},
		{"missing name", MemberInput{StationID: "01", DateJoined: "2024-01-15"}, domain.ErrInvalidInput},
		{"missing date joined", MemberInput{StationID: "01", FirstName: "A", LastName: "B"}, domain.ErrInvalidInput},
		{"unknown station", MemberInput{StationID: "99", FirstName: "A", LastName: "B", DateJoined: "2024-01-15"}, domain.ErrStationNotFound},
	}
	for _, tc := range cases {
		input := tc.input
		if _, err := svc.Create(ctx, &input, "tester"); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestChangeMemberStatus(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	svc := newTestMemberService(db)
	ctx := context.Background()

	member, err := svc.ChangeStatus(ctx, member.MemberID, domain.MemberInactive, "", "tester")
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if member.IsActive || member.IsDeceased {
		t.Errorf("inactive member flags: active=%v deceased=%v", member.IsActive, member.IsDeceased)
	}

	// Deceased without a date is refused
	if _, err := svc.ChangeStatus(ctx, member.MemberID, domain.MemberDeceased, "", "tester"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("deceased without date: err = %v, want ErrInvalidInput", err)
	}

	member, err = svc.ChangeStatus(ctx, member.MemberID, domain.MemberDeceased, "2024-06-01", "tester")
	if err != nil {
		t.Fatalf("mark deceased: %v", err)
	}
	if !member.IsDeceased || member.DeceasedDate == nil || *member.DeceasedDate != "2024-06-01" {
		t.Errorf("deceased member state wrong: %+v", member)
	}

	// back to Active clears the deceased marker
	member, err = svc.ChangeStatus(ctx, member.MemberID, domain.MemberActive, "", "tester")
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !member.IsActive || member.IsDeceased || member.DeceasedDate != nil {
		t.Errorf("reactivated member state wrong: %+v", member)
	}
}

func TestSearchMembers(t *testing.T) {
	db := testDB(t)
	svc := newTestMemberService(db)
	ctx := context.Background()

	names := [][2]string{{"Amina", "Bello"}, {"Chidi", "Okafor"}, {"Amara", "Eze"}}
	for _, n := range names {
		if _, err := svc.Create(ctx, &MemberInput{
			StationID: "01", FirstName: n[0], LastName: n[1], DateJoined: "2024-01-15",
		}, "tester"); err != nil {
			t.Fatalf("create %s: %v", n[0], err)
		}
	}

	byName, err := svc.Search(ctx, "Am", 10)
	if err != nil {
		t.Fatalf("search by name: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("search 'Am' matched %d members, want 2", len(byName))
	}

	byID, err := svc.Search(ctx, "NFC0002", 10)
	if err != nil {
		t.Fatalf("search by ID: %v", err)
	}
	if len(byID) != 1 || byID[0].LastName != "Okafor" {
		t.Errorf("search by ID returned %v", byID)
	}

	if _, err := svc.Search(ctx, "", 10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty term: err = %v, want ErrInvalidInput", err)
	}
}

func TestMemberNeverPhysicallyDeleted(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	svc := newTestMemberService(db)
	ctx := context.Background()

	if _, err := svc.ChangeStatus(ctx, member.MemberID, domain.MemberInactive, "", "tester"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// still retrievable, just filtered from active listings
	if _, err := svc.GetByID(ctx, member.MemberID); err != nil {
		t.Errorf("inactive member not retrievable: %v", err)
	}
	active, _, err := svc.List(ctx, true, 0, 50)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, m := range active {
		if m.MemberID == member.MemberID {
			t.Error("inactive member appears in active listing")
		}
	}
}
