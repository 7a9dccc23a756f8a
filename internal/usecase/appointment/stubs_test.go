package appointment

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

// repoStub guarda tudo em memória; os campos *Err simulam falhas remotas.
type repoStub struct {
	clients      map[uint]models.Client
	pets         map[uint]models.Pet
	appointments map[string]models.Appointment
	blocks       []models.BlockedSlot
	photos       map[string][]models.AppointmentPhoto
	weights      []models.WeightRecord
	nextID       int

	updateErr error
	createErr error
	photoErr  error
	weightErr error

	updates int
}

func newRepoStub() *repoStub {
	return &repoStub{
		clients: map[uint]models.Client{
			1: {ID: 1, Name: "Ana", Phone: "+5215512345678"},
			2: {ID: 2, Name: "Bruno", Phone: "+5215587654321"},
		},
		pets: map[uint]models.Pet{
			10: {ID: 10, ClientID: 1, Name: "Luna"},
			20: {ID: 20, ClientID: 2, Name: "Thor"},
		},
		appointments: map[string]models.Appointment{},
		photos:       map[string][]models.AppointmentPhoto{},
	}
}

func (r *repoStub) seed(ap models.Appointment) models.Appointment {
	if ap.ID == "" {
		r.nextID++
		ap.ID = fmt.Sprintf("ap-%d", r.nextID)
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *repoStub) GetClientByUser(ctx context.Context, userID uint) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID != nil && *c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *repoStub) GetClient(ctx context.Context, clientID uint) (*models.Client, error) {
	c, ok := r.clients[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *repoStub) GetPet(ctx context.Context, petID uint) (*models.Pet, error) {
	p, ok := r.pets[petID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *repoStub) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	ap.ID = fmt.Sprintf("ap-%d", r.nextID)
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *repoStub) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *repoStub) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *repoStub) DeleteAppointment(ctx context.Context, id string) error {
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	delete(r.photos, id)
	return nil
}

func (r *repoStub) ListOccupyingForDay(ctx context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Date == date && domain.Status(ap.Status).Occupies() {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *repoStub) ListBlockedSlots(ctx context.Context, from, to string) ([]models.BlockedSlot, error) {
	var out []models.BlockedSlot
	for _, b := range r.blocks {
		if b.Date >= from && b.Date < to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *repoStub) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.From != "" && ap.Date < f.From {
			continue
		}
		if f.To != "" && ap.Date >= f.To {
			continue
		}
		if f.ClientID != nil && ap.ClientID != *f.ClientID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, ap.Status) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *repoStub) CountAppointments(ctx context.Context, f domain.ListFilter) (int64, error) {
	list, err := r.ListAppointments(ctx, f)
	return int64(len(list)), err
}

func (r *repoStub) ListPhotos(ctx context.Context, id string) ([]models.AppointmentPhoto, error) {
	return r.photos[id], nil
}

func (r *repoStub) UpsertPhoto(ctx context.Context, photo *models.AppointmentPhoto) error {
	if r.photoErr != nil {
		return r.photoErr
	}
	list := r.photos[photo.AppointmentID]
	for i := range list {
		if list[i].Type == photo.Type {
			list[i].URL = photo.URL
			list[i].ObjectKey = photo.ObjectKey
			return nil
		}
	}
	r.photos[photo.AppointmentID] = append(list, *photo)
	return nil
}

func (r *repoStub) CreateWeightRecord(ctx context.Context, rec *models.WeightRecord) error {
	if r.weightErr != nil {
		return r.weightErr
	}
	r.weights = append(r.weights, *rec)
	return nil
}

func hasStatus(list []domain.Status, s string) bool {
	for _, st := range list {
		if string(st) == s {
			return true
		}
	}
	return false
}

// storeStub registra cada envio para conferir a ordem das escritas.
type storeStub struct {
	calls []string
	err   error
}

func (s *storeStub) SavePhoto(ctx context.Context, id string, kind domain.PhotoType, up domain.Upload) (domain.StoredFile, error) {
	s.calls = append(s.calls, "photo:"+string(kind))
	if s.err != nil {
		return domain.StoredFile{}, s.err
	}
	key := "appointments/" + id + "/" + string(kind) + ".webp"
	return domain.StoredFile{Key: key, URL: "https://cdn.test/" + key}, nil
}

func (s *storeStub) SaveReceipt(ctx context.Context, id string, up domain.Upload) (domain.StoredFile, error) {
	s.calls = append(s.calls, "receipt")
	if s.err != nil {
		return domain.StoredFile{}, s.err
	}
	key := "receipts/" + id + "/" + up.Filename
	return domain.StoredFile{Key: key, URL: "https://cdn.test/" + key}, nil
}

type auditStub struct {
	events []audit.Event
}

func (a *auditStub) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

func (a *auditStub) actions() []string {
	out := make([]string, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Action
	}
	return out
}

type notifierStub struct {
	sent []notify.Message
}

func (n *notifierStub) Dispatch(msg notify.Message) {
	n.sent = append(n.sent, msg)
}

// -------- fixtures --------

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testSettings() Settings {
	return Settings{
		Timezone:      "UTC",
		StaffCatalog:  domain.SlotCatalog(domain.DefaultStaffSlots),
		PublicCatalog: domain.SlotCatalog(domain.DefaultPublicSlots),
		SlotCapacity:  3,
		BusinessPhone: "+5215500000000",
	}
}

func customer(clientID uint) session.Actor {
	id := clientID
	return session.Actor{UserID: 100 + clientID, Role: models.RoleCustomer, ClientID: &id}
}

var (
	employee = session.Actor{UserID: 2, Role: models.RoleEmployee}
	owner    = session.Actor{UserID: 1, Role: models.RoleOwner}
)

func upload(name string) *domain.Upload {
	return &domain.Upload{Filename: name, ContentType: "image/jpeg", Body: bytes.NewReader([]byte("img"))}
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
