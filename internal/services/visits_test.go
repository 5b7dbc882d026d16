package services

import (
	"testing"
	"time"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
)

func newVisitFixture(t *testing.T) *VisitService {
	t.Helper()
	return NewVisitService(storage.NewMemoryStore())
}

func mustCreateVisit(t *testing.T, svc *VisitService, date time.Time, doctor string, reminder *time.Time) *models.Visit {
	t.Helper()

	visit, err := svc.Create(&models.VisitInput{
		VisitDate:         date,
		DoctorName:        doctor,
		NextVisitReminder: reminder,
	})
	if err != nil {
		t.Fatalf("create visit: %v", err)
	}
	return visit
}

func TestCreateVisitValidation(t *testing.T) {
	svc := newVisitFixture(t)

	_, err := svc.Create(&models.VisitInput{DoctorName: "Dr. Okafor"})
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for missing visitDate, got %v", err)
	}

	_, err = svc.Create(&models.VisitInput{VisitDate: time.Now()})
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for missing doctorName, got %v", err)
	}
}

func TestFindByDateRange(t *testing.T) {
	svc := newVisitFixture(t)

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	mustCreateVisit(t, svc, base, "Dr. Okafor", nil)
	mustCreateVisit(t, svc, base.AddDate(0, 0, 14), "Dr. Adeyemi", nil)
	mustCreateVisit(t, svc, base.AddDate(0, 2, 0), "Dr. Okafor", nil)

	visits, err := svc.FindByDateRange(base.AddDate(0, 0, -1), base.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits in range, got %d", len(visits))
	}
	if visits[0].VisitDate.After(visits[1].VisitDate) {
		t.Error("range results should be sorted ascending by visit date")
	}

	all, err := svc.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(all))
	}
	if all[0].VisitDate.Before(all[1].VisitDate) {
		t.Error("listing should be sorted descending by visit date")
	}
}

func TestFindOneMissing(t *testing.T) {
	svc := newVisitFixture(t)

	_, err := svc.FindOne("no-such-id")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdateVisitPartial(t *testing.T) {
	svc := newVisitFixture(t)

	visit := mustCreateVisit(t, svc, time.Now(), "Dr. Okafor", nil)

	week := 24
	notes := "BP stable, schedule scan"
	updated, err := svc.Update(visit.ID, &models.VisitUpdate{
		PregnancyWeek: &week,
		Notes:         &notes,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PregnancyWeek == nil || *updated.PregnancyWeek != 24 {
		t.Error("pregnancy week not updated")
	}
	if updated.DoctorName != "Dr. Okafor" {
		t.Error("unset fields must be left unchanged")
	}
}

func TestDeleteVisit(t *testing.T) {
	svc := newVisitFixture(t)

	visit := mustCreateVisit(t, svc, time.Now(), "Dr. Okafor", nil)
	if err := svc.Delete(visit.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(visit.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound on double delete, got %v", err)
	}
}

func TestUpcomingRemindersAndStats(t *testing.T) {
	svc := newVisitFixture(t)

	now := time.Now()
	soon := now.Add(48 * time.Hour)
	farOut := now.AddDate(0, 1, 0)
	past := now.Add(-24 * time.Hour)

	mustCreateVisit(t, svc, now, "Dr. Okafor", &soon)
	mustCreateVisit(t, svc, now.AddDate(0, 0, -30), "Dr. Adeyemi", &farOut)
	mustCreateVisit(t, svc, now.AddDate(0, 0, -60), "Dr. Bello", &past)

	reminders, err := svc.UpcomingReminders()
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder inside the 7-day window, got %d", len(reminders))
	}
	if reminders[0].DoctorName != "Dr. Okafor" {
		t.Errorf("wrong reminder selected: %s", reminders[0].DoctorName)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisits != 3 {
		t.Errorf("total visits = %d, want 3", stats.TotalVisits)
	}
	if stats.ThisMonthVisits < 1 {
		t.Errorf("this month visits = %d, want at least 1", stats.ThisMonthVisits)
	}
	if stats.UpcomingReminders != 1 {
		t.Errorf("upcoming reminders = %d, want 1", stats.UpcomingReminders)
	}
}
