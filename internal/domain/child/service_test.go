package child

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mamacare/mamacare/internal/schedule"
)

// =========== Mock Repositories ===========

type mockChildRepo struct {
	store map[uuid.UUID]*Child
}

func newMockChildRepo() *mockChildRepo {
	return &mockChildRepo{store: make(map[uuid.UUID]*Child)}
}

func (m *mockChildRepo) Create(_ context.Context, ch *Child) error {
	ch.ID = uuid.New()
	m.store[ch.ID] = ch
	return nil
}

func (m *mockChildRepo) GetByID(_ context.Context, id uuid.UUID) (*Child, error) {
	ch, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ch, nil
}

func (m *mockChildRepo) Update(_ context.Context, ch *Child) error {
	if _, ok := m.store[ch.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[ch.ID] = ch
	return nil
}

func (m *mockChildRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockChildRepo) ListByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]*Child, int, error) {
	var result []*Child
	for _, ch := range m.store {
		if ch.AccountID == accountID {
			result = append(result, ch)
		}
	}
	return result, len(result), nil
}

// mockRecordRepo keeps insertion order, mirroring ORDER BY scheduled_date, id.
type mockRecordRepo struct {
	store []*VaccinationRecord
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{}
}

func (m *mockRecordRepo) CreateBatch(_ context.Context, records []*VaccinationRecord) error {
	for _, rec := range records {
		rec.ID = uuid.New()
		m.store = append(m.store, rec)
	}
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*VaccinationRecord, error) {
	for _, rec := range m.store {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRecordRepo) ListByChild(_ context.Context, childID uuid.UUID) ([]*VaccinationRecord, error) {
	var result []*VaccinationRecord
	for _, rec := range m.store {
		if rec.ChildID == childID {
			result = append(result, rec)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledDate.Before(result[j].ScheduledDate)
	})
	return result, nil
}

func (m *mockRecordRepo) Update(_ context.Context, rec *VaccinationRecord) error {
	for i, existing := range m.store {
		if existing.ID == rec.ID {
			m.store[i] = rec
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (m *mockRecordRepo) DeleteByChild(_ context.Context, childID uuid.UUID) error {
	var kept []*VaccinationRecord
	for _, rec := range m.store {
		if rec.ChildID != childID {
			kept = append(kept, rec)
		}
	}
	m.store = kept
	return nil
}

// =========== Helpers ===========

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad clock value: %v", err)
	}
	return func() time.Time { return ts }
}

func newTestService(t *testing.T, today string) (*Service, *mockRecordRepo) {
	t.Helper()
	records := newMockRecordRepo()
	svc := NewService(newMockChildRepo(), records, WithClock(fixedClock(t, today)))
	return svc, records
}

func mustCreateChild(t *testing.T, svc *Service, accountID uuid.UUID, dob string) *Child {
	t.Helper()
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		t.Fatalf("bad dob: %v", err)
	}
	ch := &Child{AccountID: accountID, Name: "Wanjiku", DateOfBirth: born}
	if err := svc.Create(context.Background(), ch); err != nil {
		t.Fatalf("creating child: %v", err)
	}
	return ch
}

// =========== Tests ===========

func TestCreate_MaterializesSchedule(t *testing.T) {
	svc, records := newTestService(t, "2024-06-01")
	accountID := uuid.New()

	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	recs, err := records.ListByChild(context.Background(), ch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != len(schedule.KEPISchedule) {
		t.Fatalf("expected %d records, got %d", len(schedule.KEPISchedule), len(recs))
	}
	if !recs[0].ScheduledDate.Equal(ch.DateOfBirth) {
		t.Errorf("expected first dose on date of birth, got %s", recs[0].ScheduledDate)
	}
	if recs[0].AgeLabel != "At birth" {
		t.Errorf("expected At birth label, got %s", recs[0].AgeLabel)
	}
	for _, rec := range recs {
		if rec.Status != schedule.StatusScheduled {
			t.Errorf("expected all records scheduled, got %s for %s", rec.Status, rec.VaccineName)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t, "2024-06-01")
	accountID := uuid.New()
	born, _ := time.Parse("2006-01-02", "2024-01-15")
	bad := "other"

	tests := []struct {
		name  string
		child Child
	}{
		{"missing account", Child{Name: "W", DateOfBirth: born}},
		{"missing name", Child{AccountID: accountID, DateOfBirth: born}},
		{"missing dob", Child{AccountID: accountID, Name: "W"}},
		{"future dob", Child{AccountID: accountID, Name: "W", DateOfBirth: born.AddDate(2, 0, 0)}},
		{"bad gender", Child{AccountID: accountID, Name: "W", DateOfBirth: born, Gender: &bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), &tt.child); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGet_OwnershipEnforced(t *testing.T) {
	svc, _ := newTestService(t, "2024-06-01")
	owner := uuid.New()
	ch := mustCreateChild(t, svc, owner, "2024-01-15")

	if _, err := svc.Get(context.Background(), owner, ch.ID); err != nil {
		t.Errorf("owner should read their child: %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New(), ch.ID); err == nil {
		t.Error("expected error for foreign account")
	}
}

func TestNextDose_FirstPending(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-20")
	accountID := uuid.New()
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	next, err := svc.NextDose(context.Background(), accountID, ch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next == nil {
		t.Fatal("expected a pending dose")
	}
	if next.Name != "BCG" {
		t.Errorf("expected BCG first, got %s", next.Name)
	}
	if next.Status != schedule.StatusOverdue {
		t.Errorf("expected overdue for birth dose 5 days on, got %s", next.Status)
	}
}

func TestAdminister_AdvancesNextDose(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-15")
	accountID := uuid.New()
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "BCG", 1, time.Time{}); err != nil {
		t.Fatalf("administering BCG: %v", err)
	}
	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "OPV", 0, time.Time{}); err != nil {
		t.Fatalf("administering OPV birth dose: %v", err)
	}

	next, err := svc.NextDose(context.Background(), accountID, ch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next == nil {
		t.Fatal("expected more pending doses")
	}
	if next.Name == "BCG" || (next.Name == "OPV" && next.Dose == 0) {
		t.Errorf("administered dose still pending: %s dose %d", next.Name, next.Dose)
	}
}

func TestAdminister_DoubleDoseRejected(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-15")
	accountID := uuid.New()
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "BCG", 1, time.Time{}); err != nil {
		t.Fatalf("first administration: %v", err)
	}
	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "BCG", 1, time.Time{}); err == nil {
		t.Error("expected error for repeat administration")
	}
}

func TestAdminister_UnknownDose(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-15")
	accountID := uuid.New()
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "BCG", 9, time.Time{}); err == nil {
		t.Error("expected error for unknown dose number")
	}
	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "Varicella", 1, time.Time{}); err == nil {
		t.Error("expected error for vaccine not on the schedule")
	}
}

func TestProgress_CountsAdministered(t *testing.T) {
	svc, _ := newTestService(t, "2024-03-01")
	accountID := uuid.New()
	// Born Jan 15: birth (2 doses) and week 6 (4 doses) are due by Mar 1.
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "BCG", 1, time.Time{}); err != nil {
		t.Fatalf("administering BCG: %v", err)
	}
	if _, err := svc.Administer(context.Background(), accountID, ch.ID, "OPV", 0, time.Time{}); err != nil {
		t.Fatalf("administering OPV birth dose: %v", err)
	}

	p, err := svc.Progress(context.Background(), accountID, ch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DueCount != 6 {
		t.Errorf("expected 6 doses due by 2024-03-01, got %d", p.DueCount)
	}
	if p.CompletedCount != 2 {
		t.Errorf("expected 2 completed, got %d", p.CompletedCount)
	}
	if p.Percentage != 33 {
		t.Errorf("expected 33%%, got %d", p.Percentage)
	}
	if p.NextPending == nil {
		t.Fatal("expected a next pending dose")
	}
}

func TestDelete_RemovesRecords(t *testing.T) {
	svc, records := newTestService(t, "2024-06-01")
	accountID := uuid.New()
	ch := mustCreateChild(t, svc, accountID, "2024-01-15")

	if err := svc.Delete(context.Background(), accountID, ch.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs, _ := records.ListByChild(context.Background(), ch.ID)
	if len(recs) != 0 {
		t.Errorf("expected records removed with child, found %d", len(recs))
	}
}
