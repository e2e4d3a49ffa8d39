package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria con transacciones
// ──────────────────────────────────────────────────────────────────────────────

var errBoom = errors.New("fallo de base de datos")

// memDB implementa todos los repositorios y TxRunner sobre mapas. Run restaura el
// estado previo si fn falla, como un rollback.
type memDB struct {
	mu           sync.Mutex
	companies    map[string]entity.Company
	salons       map[string]entity.Salon
	employees    map[string]entity.Employee
	appointments map[string]entity.Appointment
	clients      map[string]entity.Client
	// fail operación -> error a devolver
	fail map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		companies:    map[string]entity.Company{},
		salons:       map[string]entity.Salon{},
		employees:    map[string]entity.Employee{},
		appointments: map[string]entity.Appointment{},
		clients:      map[string]entity.Client{},
		fail:         map[string]error{},
	}
}

func (db *memDB) failing(op string) error { return db.fail[op] }

func (db *memDB) Run(_ context.Context, fn func(r repository.Repos) error) error {
	db.mu.Lock()
	snapshot := db.clone()
	db.mu.Unlock()
	if err := fn(db.repos()); err != nil {
		db.mu.Lock()
		db.companies, db.salons, db.employees = snapshot.companies, snapshot.salons, snapshot.employees
		db.appointments, db.clients = snapshot.appointments, snapshot.clients
		db.mu.Unlock()
		return err
	}
	return nil
}

func (db *memDB) repos() repository.Repos {
	return repository.Repos{
		Companies:    companyRepo{db},
		Salons:       salonRepo{db},
		Employees:    employeeRepo{db},
		Appointments: appointmentRepo{db},
		Clients:      clientRepo{db},
	}
}

func (db *memDB) clone() *memDB {
	c := newMemDB()
	for k, v := range db.companies {
		c.companies[k] = v
	}
	for k, v := range db.salons {
		c.salons[k] = v
	}
	for k, v := range db.employees {
		c.employees[k] = v
	}
	for k, v := range db.appointments {
		c.appointments[k] = v
	}
	for k, v := range db.clients {
		c.clients[k] = v
	}
	return c
}

func inScope(scope repository.Scope, ownerID, salonID string) bool {
	if scope.Empty() {
		return false
	}
	return (scope.OwnerID == "" || scope.OwnerID == ownerID) &&
		(scope.SalonID == "" || scope.SalonID == salonID)
}

// ── Companies ────────────────────────────────────────────────────────────────

type companyRepo struct{ db *memDB }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.failing("company.create"); err != nil {
		return err
	}
	for _, existing := range r.db.companies {
		if existing.OwnerID == c.OwnerID {
			return domain.ErrDuplicate
		}
	}
	r.db.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r companyRepo) FindByOwner(_ context.Context, ownerID string) (*entity.Company, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.companies {
		if c.OwnerID == ownerID {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r companyRepo) UpdateWhatsApp(_ context.Context, companyID, link string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[companyID]
	if !ok {
		return domain.ErrNotFound
	}
	c.WhatsAppURL = link
	r.db.companies[companyID] = c
	return nil
}

// ── Salons ───────────────────────────────────────────────────────────────────

type salonRepo struct{ db *memDB }

func (r salonRepo) Create(_ context.Context, s *entity.Salon) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.salons[s.ID] = *s
	return nil
}

func (r salonRepo) GetByID(_ context.Context, id string) (*entity.Salon, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.salons[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r salonRepo) FindByManager(_ context.Context, managerID string, limit int) ([]*entity.Salon, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Salon
	for _, s := range r.db.salons {
		if s.ManagedBy(managerID) && len(out) < limit {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r salonRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Salon, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Salon
	for _, s := range r.db.salons {
		if s.CompanyID == companyID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r salonRepo) SetManager(_ context.Context, salonID, managerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.failing("salon.set_manager"); err != nil {
		return err
	}
	s, ok := r.db.salons[salonID]
	if !ok {
		return domain.ErrNotFound
	}
	s.ManagerID = &managerID
	r.db.salons[salonID] = s
	return nil
}

func (r salonRepo) Delete(_ context.Context, id, companyID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.salons[id]
	if !ok || s.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.db.salons, id)
	return nil
}

// ── Employees ────────────────────────────────────────────────────────────────

type employeeRepo struct{ db *memDB }

func (r employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.employees[e.ID] = *e
	return nil
}

func (r employeeRepo) List(_ context.Context, scope repository.Scope) ([]*entity.Employee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if scope.Empty() {
		return nil, domain.ErrForbidden
	}
	var out []*entity.Employee
	for _, e := range r.db.employees {
		if inScope(scope, e.OwnerID, e.SalonID) {
			cp := e
			cp.SalonName = r.db.salons[e.SalonID].Name
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r employeeRepo) Delete(_ context.Context, id string, scope repository.Scope) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.employees[id]
	if !ok || !inScope(scope, e.OwnerID, e.SalonID) {
		return domain.ErrNotFound
	}
	delete(r.db.employees, id)
	return nil
}

// ── Appointments ─────────────────────────────────────────────────────────────

type appointmentRepo struct{ db *memDB }

func (r appointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) GetByID(_ context.Context, id string, scope repository.Scope) (*entity.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.appointments[id]
	if !ok || !inScope(scope, a.OwnerID, a.SalonID) {
		return nil, nil
	}
	return &a, nil
}

func (r appointmentRepo) List(_ context.Context, scope repository.Scope) ([]*entity.Appointment, error) {
	return r.filter(scope, func(entity.Appointment) bool { return true })
}

func (r appointmentRepo) Between(_ context.Context, scope repository.Scope, from, to time.Time) ([]*entity.Appointment, error) {
	list, err := r.filter(scope, func(a entity.Appointment) bool {
		return !a.AppointmentTime.Before(from) && a.AppointmentTime.Before(to)
	})
	sort.Slice(list, func(i, j int) bool { return list[i].AppointmentTime.Before(list[j].AppointmentTime) })
	return list, err
}

func (r appointmentRepo) filter(scope repository.Scope, keep func(entity.Appointment) bool) ([]*entity.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if scope.Empty() {
		return nil, domain.ErrForbidden
	}
	var out []*entity.Appointment
	for _, a := range r.db.appointments {
		if inScope(scope, a.OwnerID, a.SalonID) && keep(a) {
			cp := a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r appointmentRepo) Update(_ context.Context, a *entity.Appointment, scope repository.Scope) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.appointments[a.ID]
	if !ok || !inScope(scope, cur.OwnerID, cur.SalonID) {
		return domain.ErrNotFound
	}
	r.db.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) Delete(_ context.Context, id string, scope repository.Scope) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.appointments[id]
	if !ok || !inScope(scope, a.OwnerID, a.SalonID) {
		return domain.ErrNotFound
	}
	delete(r.db.appointments, id)
	return nil
}

// ── Clients ──────────────────────────────────────────────────────────────────

type clientRepo struct{ db *memDB }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.failing("client.create"); err != nil {
		return err
	}
	r.db.clients[c.ID] = *c
	return nil
}

func (r clientRepo) FindByContact(_ context.Context, ownerID, email, phone string) (*entity.Client, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.clients {
		if c.OwnerID != ownerID {
			continue
		}
		if (email != "" && c.Email == email) || (email == "" && phone != "" && c.Phone == phone) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r clientRepo) List(_ context.Context, ownerID string) ([]*entity.Client, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.db.clients {
		if c.OwnerID == ownerID {
			cp := c
			for _, a := range r.db.appointments {
				if a.OwnerID == ownerID && ((c.Email != "" && a.ClientEmail == c.Email) || (c.Phone != "" && a.ClientPhone == c.Phone)) {
					cp.AppointmentsCount++
				}
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r clientRepo) Delete(_ context.Context, id, ownerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.clients[id]
	if !ok || c.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.db.clients, id)
	return nil
}

// ── Stats ────────────────────────────────────────────────────────────────────

type statsRepo struct{ db *memDB }

func (r statsRepo) CountSalons(_ context.Context, companyID string) (int, error) {
	if err := r.db.failing("stats.salons"); err != nil {
		return 0, err
	}
	list, _ := salonRepo(r).ListByCompany(context.Background(), companyID)
	return len(list), nil
}

func (r statsRepo) CountEmployees(ctx context.Context, scope repository.Scope) (int, error) {
	list, err := employeeRepo(r).List(ctx, scope)
	return len(list), err
}

func (r statsRepo) CountAppointments(ctx context.Context, scope repository.Scope) (int, error) {
	list, err := appointmentRepo(r).List(ctx, scope)
	return len(list), err
}

func (r statsRepo) CountClients(ctx context.Context, ownerID string) (int, error) {
	list, err := clientRepo(r).List(ctx, ownerID)
	return len(list), err
}

func (r statsRepo) Upcoming(_ context.Context, scope repository.Scope, now time.Time, limit int) ([]*entity.Appointment, error) {
	list, err := appointmentRepo(r).filter(scope, func(a entity.Appointment) bool { return a.Upcoming(now) })
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AppointmentTime.Before(list[j].AppointmentTime) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r statsRepo) BookedAmount(ctx context.Context, scope repository.Scope) (decimal.Decimal, error) {
	list, err := appointmentRepo(r).List(ctx, scope)
	total := decimal.Zero
	for _, a := range list {
		total = total.Add(a.Price)
	}
	return total, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Otros dobles
// ──────────────────────────────────────────────────────────────────────────────

// fakeIdentities solo responde FindByEmail.
type fakeIdentities struct {
	byEmail map[string]entity.Identity
	err     error
}

func (f *fakeIdentities) SignUp(context.Context, string, string) (*entity.Session, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeIdentities) SignInWithPassword(context.Context, string, string) (*entity.Session, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeIdentities) GetSession(context.Context, string) (*entity.Session, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeIdentities) RefreshSession(context.Context, string) (*entity.Session, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeIdentities) SignOut(context.Context, string) error { return nil }

func (f *fakeIdentities) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	if f.err != nil {
		return nil, domain.Lookup("buscar identidad", f.err)
	}
	id, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

// fakeStorage bucket en memoria.
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newFakeStorage() *fakeStorage { return &fakeStorage{objects: map[string][]byte{}} }

func (s *fakeStorage) Upload(_ context.Context, bucket, path string, r io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+path] = buf.Bytes()
	return "/storage/" + bucket + "/" + path, nil
}

func (s *fakeStorage) Remove(_ context.Context, bucket, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+path)
	return nil
}

// fakePDF registra la última llamada.
type fakePDF struct {
	day   time.Time
	appts []*entity.Appointment
}

func (f *fakePDF) Generate(_ *entity.Salon, _ *entity.Company, day time.Time, appts []*entity.Appointment) ([]byte, error) {
	f.day, f.appts = day, appts
	return []byte("%PDF-1.4"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: una empresa con dos salones, uno gestionado por un manager
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "11111111-1111-1111-1111-111111111111"
	managerID  = "22222222-2222-2222-2222-222222222222"
	strangerID = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	db      *memDB
	company entity.Company
	salonA  entity.Salon // gestionado por managerID
	salonB  entity.Salon
	admin   usecase.Actor
	manager usecase.Actor
}

func newFixture() *fixture {
	db := newMemDB()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mgr := managerID
	company := entity.Company{ID: "company-1", OwnerID: adminID, Name: "Fedrita Spa", CreatedAt: now}
	salonA := entity.Salon{ID: "salon-a", CompanyID: company.ID, OwnerID: adminID, ManagerID: &mgr, Name: "Centro", CreatedAt: now}
	salonB := entity.Salon{ID: "salon-b", CompanyID: company.ID, OwnerID: adminID, Name: "Norte", CreatedAt: now.Add(time.Hour)}
	db.companies[company.ID] = company
	db.salons[salonA.ID] = salonA
	db.salons[salonB.ID] = salonB

	admin, _ := usecase.ActorFrom(entity.AuthState{
		Identity: &entity.Identity{ID: adminID, Email: "admin@fedrita.co"},
		Profile:  entity.AdminProfile(company),
	})
	manager, _ := usecase.ActorFrom(entity.AuthState{
		Identity: &entity.Identity{ID: managerID, Email: "manager@fedrita.co"},
		Profile:  entity.ManagerProfile(salonA, &company),
	})
	return &fixture{db: db, company: company, salonA: salonA, salonB: salonB, admin: admin, manager: manager}
}

func (f *fixture) stranger() usecase.Actor {
	a, _ := usecase.ActorFrom(entity.AuthState{Identity: &entity.Identity{ID: strangerID}})
	return a
}
