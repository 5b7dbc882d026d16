package services

import (
	"testing"

	"github.com/virtualflux/mht-backend/internal/storage"
)

func TestSeedIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewContactService(store)

	if err := svc.Seed(); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	count, _ := store.CountContacts()
	if count == 0 {
		t.Fatal("seed should populate an empty directory")
	}

	if err := svc.Seed(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	after, _ := store.CountContacts()
	if after != count {
		t.Fatalf("second seed changed the directory: %d -> %d", count, after)
	}
}

func TestContactFilters(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewContactService(store)
	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := svc.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].State > all[i].State {
			t.Fatal("listing should be sorted by state then name")
		}
	}

	lagos, err := svc.FindByState("Lagos")
	if err != nil {
		t.Fatalf("by state: %v", err)
	}
	if len(lagos) == 0 {
		t.Fatal("expected seeded Lagos contacts")
	}
	for _, c := range lagos {
		if c.State != "Lagos" {
			t.Errorf("contact %q has state %q", c.Name, c.State)
		}
	}

	teaching, err := svc.FindByType("Teaching Hospital")
	if err != nil {
		t.Fatalf("by type: %v", err)
	}
	for _, c := range teaching {
		if c.Type != "Teaching Hospital" {
			t.Errorf("contact %q has type %q", c.Name, c.Type)
		}
	}

	allDay, err := svc.Find24HourContacts()
	if err != nil {
		t.Fatalf("24 hours: %v", err)
	}
	if len(allDay) == 0 {
		t.Fatal("expected 24-hour contacts in the seed data")
	}
	for _, c := range allDay {
		if !c.Is24Hours {
			t.Errorf("contact %q is not 24-hour", c.Name)
		}
	}
}
