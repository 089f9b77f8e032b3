package services

import (
	"context"
	"errors"
	"testing"

	"nfc-coop/internal/core/domain"
)

func TestSettingRoundTrip(t *testing.T) {
	db := testDB(t)
	svc := newTestSettingService(db)
	ctx := context.Background()

	if err := svc.Set(ctx, domain.SettingOrganizationName, "NFC Cooperative Society", "tester"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := svc.Get(ctx, domain.SettingOrganizationName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "NFC Cooperative Society" {
		t.Errorf("value = %q", value)
	}

	if _, err := svc.Get(ctx, "no_such_key"); !errors.Is(err, domain.ErrSettingNotFound) {
		t.Errorf("missing key: err = %v, want ErrSettingNotFound", err)
	}
}

func TestSetOverpaymentPolicyValidated(t *testing.T) {
	db := testDB(t)
	svc := newTestSettingService(db)
	ctx := context.Background()

	if err := svc.Set(ctx, domain.SettingOverpaymentPolicy, "reject", "tester"); err != nil {
		t.Errorf("valid policy rejected: %v", err)
	}
	if err := svc.Set(ctx, domain.SettingOverpaymentPolicy, "refund", "tester"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("invalid policy: err = %v, want ErrInvalidInput", err)
	}
}

func TestResyncCounters(t *testing.T) {
	db := testDB(t)
	members := newTestMemberService(db)
	stations := newTestStationService(db)
	loans := newTestLoanService(db)
	settings := newTestSettingService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := members.Create(ctx, &MemberInput{
			StationID: "01", FirstName: "M", LastName: "N", DateJoined: "2024-01-15",
		}, "tester"); err != nil {
			t.Fatalf("create member: %v", err)
		}
	}
	if _, err := stations.Create(ctx, "Ibadan"); err != nil {
		t.Fatalf("create station: %v", err)
	}
	if _, err := loans.Disburse(ctx, &DisburseInput{
		MemberID: "NFC0001", LoanTypeID: 1,
		PrincipalAmount: 1000, DurationMonths: 6, StartDate: "2024-03-01",
	}, "tester"); err != nil {
		t.Fatalf("disburse: %v", err)
	}

	// simulate an import that bypassed the allocator
	if err := settings.Set(ctx, domain.SettingNextMemberNumber, "1", "tester"); err != nil {
		t.Fatalf("rewind counter: %v", err)
	}
	if err := settings.Set(ctx, domain.SettingNextLoanNumber, "1", "tester"); err != nil {
		t.Fatalf("rewind counter: %v", err)
	}

	if err := settings.ResyncCounters(ctx, "tester"); err != nil {
		t.Fatalf("resync: %v", err)
	}

	nextMember, _ := settings.Get(ctx, domain.SettingNextMemberNumber)
	if nextMember != "4" {
		t.Errorf("next member number = %q, want 4", nextMember)
	}
	nextStation, _ := settings.Get(ctx, domain.SettingNextStationNumber)
	if nextStation != "3" {
		t.Errorf("next station number = %q, want 3", nextStation)
	}
	nextLoan, _ := settings.Get(ctx, domain.SettingNextLoanNumber)
	if nextLoan != "2" {
		t.Errorf("next loan number = %q, want 2", nextLoan)
	}

	// allocation resumes without collision
	member, err := members.Create(ctx, &MemberInput{
		StationID: "01", FirstName: "After", LastName: "Resync", DateJoined: "2024-01-15",
	}, "tester")
	if err != nil {
		t.Fatalf("create after resync: %v", err)
	}
	if member.MemberID != "NFC0004" {
		t.Errorf("member ID after resync = %q, want NFC0004", member.MemberID)
	}
	loan, err := loans.Disburse(ctx, &DisburseInput{
		MemberID: member.MemberID, LoanTypeID: 1,
		PrincipalAmount: 1000, DurationMonths: 6, StartDate: "2024-03-01",
	}, "tester")
	if err != nil {
		t.Fatalf("disburse after resync: %v", err)
	}
	if want := "L-" + member.MemberID + "-000002"; loan.LoanNumber != want {
		t.Errorf("loan number after resync = %q, want %q", loan.LoanNumber, want)
	}
}
