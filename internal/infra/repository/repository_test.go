package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/groomer-scheduler/internal/db"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := dbpkg.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func seedClientPet(t *testing.T, gdb *gorm.DB) (models.Client, models.Pet) {
	t.Helper()

	client := models.Client{Name: "Ana", Phone: "+5215512345678"}
	if err := gdb.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	pet := models.Pet{ClientID: client.ID, Name: "Luna"}
	if err := gdb.Create(&pet).Error; err != nil {
		t.Fatalf("pet: %v", err)
	}
	return client, pet
}

func TestAppointmentLifecycle(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	ap := &models.Appointment{
		ClientID: client.ID, PetID: pet.ID,
		Date: "2026-03-12", Time: "10:00", Status: "pendiente",
	}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ap.ID == "" {
		t.Fatalf("expected generated id")
	}

	ap.Status = "confirmada"
	if err := repo.UpdateAppointment(ctx, ap); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil || got.Status != "confirmada" {
		t.Fatalf("get: %v %+v", err, got)
	}

	if _, err := repo.GetAppointment(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetPet(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for pet, got %v", err)
	}
}

func TestListOccupyingForDaySkipsFreedStatuses(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	for i, st := range []string{"pendiente", "confirmada", "completada", "cancelada", "rechazada"} {
		ap := &models.Appointment{
			ClientID: client.ID, PetID: pet.ID,
			Date: "2026-03-12", Time: fmt.Sprintf("1%d:00", i), Status: st,
		}
		if err := repo.CreateAppointment(ctx, ap); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	other := &models.Appointment{ClientID: client.ID, PetID: pet.ID, Date: "2026-03-13", Time: "10:00", Status: "pendiente"}
	if err := repo.CreateAppointment(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListOccupyingForDay(ctx, "2026-03-12")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 occupying rows, got %d", len(list))
	}

	n, err := repo.CountAppointments(ctx, domain.ListFilter{Statuses: []domain.Status{domain.StatusPending}})
	if err != nil || n != 2 {
		t.Fatalf("count pending: %v %d", err, n)
	}

	page, err := repo.ListAppointments(ctx, domain.ListFilter{From: "2026-03-12", To: "2026-03-14", Limit: 2})
	if err != nil || len(page) != 2 || page[0].Time != "10:00" {
		t.Fatalf("list page: %v %+v", err, page)
	}
}

func TestUpsertPhotoKeepsOnePerType(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	ap := &models.Appointment{ClientID: client.ID, PetID: pet.ID, Date: "2026-03-12", Time: "10:00", Status: "confirmada"}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, url := range []string{"https://cdn.test/1.webp", "https://cdn.test/2.webp"} {
		if err := repo.UpsertPhoto(ctx, &models.AppointmentPhoto{AppointmentID: ap.ID, Type: "arrival", URL: url}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if err := repo.UpsertPhoto(ctx, &models.AppointmentPhoto{AppointmentID: ap.ID, Type: "departure", URL: "https://cdn.test/3.webp"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	photos, err := repo.ListPhotos(ctx, ap.ID)
	if err != nil {
		t.Fatalf("list photos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].Type != "arrival" || photos[0].URL != "https://cdn.test/2.webp" {
		t.Fatalf("arrival not replaced: %+v", photos[0])
	}
}

func TestDeleteAppointmentCascades(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	ap := &models.Appointment{ClientID: client.ID, PetID: pet.ID, Date: "2026-03-12", Time: "10:00", Status: "completada"}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpsertPhoto(ctx, &models.AppointmentPhoto{AppointmentID: ap.ID, Type: "arrival", URL: "u"}); err != nil {
		t.Fatalf("photo: %v", err)
	}
	if err := repo.CreateWeightRecord(ctx, &models.WeightRecord{PetID: pet.ID, AppointmentID: ap.ID, Weight: 5, RecordedAt: time.Now()}); err != nil {
		t.Fatalf("weight: %v", err)
	}

	if err := repo.DeleteAppointment(ctx, ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var photos, weights int64
	gdb.Model(&models.AppointmentPhoto{}).Where("appointment_id = ?", ap.ID).Count(&photos)
	gdb.Model(&models.WeightRecord{}).Where("appointment_id = ?", ap.ID).Count(&weights)
	if photos != 0 || weights != 0 {
		t.Fatalf("children left behind: photos=%d weights=%d", photos, weights)
	}

	if err := repo.DeleteAppointment(ctx, ap.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdateAppointmentNeverResurrectsDeletedRow(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	ap := &models.Appointment{ClientID: client.ID, PetID: pet.ID, Date: "2026-03-12", Time: "10:00", Status: "pendiente"}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}
	stale := *ap

	if err := repo.DeleteAppointment(ctx, ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stale.Status = "confirmada"
	if err := repo.UpdateAppointment(ctx, &stale); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted row, got %v", err)
	}

	var count int64
	gdb.Model(&models.Appointment{}).Where("id = ?", ap.ID).Count(&count)
	if count != 0 {
		t.Fatalf("deleted appointment came back: %d rows", count)
	}
}

func TestUpdateAppointmentWritesZeroValuesKeepsCreatedAt(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	client, pet := seedClientPet(t, gdb)

	ap := &models.Appointment{ClientID: client.ID, PetID: pet.ID, Date: "2026-03-12", Time: "10:00", Status: "pendiente", Observations: "nervioso"}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := repo.GetAppointment(ctx, ap.ID)

	next := *before
	next.Status = "confirmada"
	next.Observations = ""
	if err := repo.UpdateAppointment(ctx, &next); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "confirmada" || got.Observations != "" || !got.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("unexpected row after update: %+v", got)
	}
}

func TestBlockedSlotIdempotence(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewBlockedSlotGormRepository(gdb)
	ctx := context.Background()

	created, err := repo.CreateBlockedSlot(ctx, &models.BlockedSlot{Date: "2026-03-12", Time: "10:00", Reason: "feriado"})
	if err != nil || !created {
		t.Fatalf("first block: %v %v", created, err)
	}
	created, err = repo.CreateBlockedSlot(ctx, &models.BlockedSlot{Date: "2026-03-12", Time: "10:00"})
	if err != nil || created {
		t.Fatalf("second block must be a no-op: %v %v", created, err)
	}
	if _, err := repo.CreateBlockedSlot(ctx, &models.BlockedSlot{Date: "2026-03-15", Time: "11:00"}); err != nil {
		t.Fatalf("other block: %v", err)
	}

	list, err := repo.ListBlockedSlots(ctx, "2026-03-12", "2026-03-13")
	if err != nil || len(list) != 1 || list[0].Reason != "feriado" {
		t.Fatalf("list: %v %+v", err, list)
	}

	removed, err := repo.DeleteBlockedSlot(ctx, "2026-03-12", "10:00")
	if err != nil || !removed {
		t.Fatalf("unblock: %v %v", removed, err)
	}
	removed, err = repo.DeleteBlockedSlot(ctx, "2026-03-12", "10:00")
	if err != nil || removed {
		t.Fatalf("second unblock must be a no-op: %v %v", removed, err)
	}
}

func TestListPetsWithReminder(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewPetGormRepository(gdb)
	client, _ := seedClientPet(t, gdb)

	last, days := "2026-01-01", 30
	gdb.Create(&models.Pet{ClientID: client.ID, Name: "Thor", LastGroomingDate: &last, ReminderFrequencyDays: &days})
	gdb.Create(&models.Pet{ClientID: client.ID, Name: "Kira", LastGroomingDate: &last})

	pets, err := repo.ListPetsWithReminder(context.Background())
	if err != nil || len(pets) != 1 || pets[0].Name != "Thor" {
		t.Fatalf("pets: %v %+v", err, pets)
	}

	n, err := repo.CountPets(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("count pets: %v %d", err, n)
	}
}
