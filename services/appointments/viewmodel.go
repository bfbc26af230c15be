package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"nataliestudio/models"
	"nataliestudio/services/backend"
)

const (
	DefaultConfirmationTTL = 3 * time.Second

	// snapshotTimeout bounds a snapshot write once it is detached from the
	// request that caused it.
	snapshotTimeout = 5 * time.Second

	CreatedMessage = "✅ Programarea a fost înregistrată cu succes!"
	DeletedMessage = "❌ Programarea a fost ștearsă!"
)

// Options configures a DefaultViewModel. Zero values pick the defaults.
type Options struct {
	Services        []models.ServiceOption
	WindowDays      int // zero picks DefaultWindowDays, negative means unbounded
	ConfirmationTTL time.Duration
	Policy          ErrorPolicy
	Location        *time.Location
	Store           Store
	Logger          *zap.Logger
	Now             func() time.Time
}

var _ ViewModel = (*DefaultViewModel)(nil)

// DefaultViewModel implements ViewModel on top of a backend.Client.
//
// Backend calls run without holding the lock; each response is applied when
// it arrives, so concurrent mutations resolve last-response-wins.
type DefaultViewModel struct {
	client     backend.Client
	store      Store
	logger     *zap.Logger
	services   []models.ServiceOption
	windowDays int
	ttl        time.Duration
	policy     ErrorPolicy
	loc        *time.Location
	now        func() time.Time

	mu           sync.RWMutex
	appointments []models.Appointment
	loaded       bool
	form         models.AppointmentInput
	confirmation models.Confirmation
	version      uint64

	// saveMu orders snapshot writes; savedVersion is guarded by it.
	saveMu       sync.Mutex
	savedVersion uint64
}

// snapshot is a copy of the collection taken under mu, written to the store
// after mu is released.
type snapshot struct {
	version uint64
	appts   []models.Appointment
}

func NewViewModel(client backend.Client, opts Options) *DefaultViewModel {
	vm := &DefaultViewModel{
		client:       client,
		store:        opts.Store,
		logger:       opts.Logger,
		services:     opts.Services,
		windowDays:   opts.WindowDays,
		ttl:          opts.ConfirmationTTL,
		policy:       opts.Policy,
		loc:          opts.Location,
		now:          opts.Now,
		appointments: []models.Appointment{},
	}
	if vm.store == nil {
		vm.store = NewMemoryStore()
	}
	if vm.logger == nil {
		vm.logger = zap.NewNop()
	}
	if len(vm.services) == 0 {
		vm.services = models.DefaultServiceOptions()
	}
	if vm.windowDays == 0 {
		vm.windowDays = DefaultWindowDays
	}
	if vm.ttl <= 0 {
		vm.ttl = DefaultConfirmationTTL
	}
	if vm.policy == "" {
		vm.policy = PolicySwallow
	}
	if vm.loc == nil {
		vm.loc = time.Local
	}
	if vm.now == nil {
		vm.now = time.Now
	}
	return vm
}

// Activate seeds local state from the snapshot store, then fetches the full
// collection from the backend.
func (vm *DefaultViewModel) Activate(ctx context.Context) error {
	seed, ok, err := vm.store.Load(ctx)
	if err != nil {
		vm.logger.Warn("Failed to load appointment snapshot", zap.Error(err))
	} else if ok {
		vm.mu.Lock()
		if !vm.loaded {
			vm.appointments = seed
		}
		vm.mu.Unlock()
		vm.logger.Debug("Seeded appointments from snapshot", zap.Int("count", len(seed)))
	}
	return vm.Refresh(ctx)
}

// Refresh replaces local state with the backend's collection. On failure the
// prior state is kept.
func (vm *DefaultViewModel) Refresh(ctx context.Context) error {
	appts, err := vm.client.ListAppointments(ctx)
	if err != nil {
		return vm.failed("Failed to fetch appointments", err)
	}

	vm.mu.Lock()
	vm.appointments = appts
	vm.loaded = true
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.persist(ctx, snap)
	vm.logger.Info("Appointments loaded", zap.Int("count", len(appts)))
	return nil
}

func (vm *DefaultViewModel) Loaded() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.loaded
}

func (vm *DefaultViewModel) Appointments() []models.Appointment {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]models.Appointment(nil), vm.appointments...)
}

func (vm *DefaultViewModel) SetField(field, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	switch field {
	case "name":
		vm.form.Name = value
	case "date":
		vm.form.Date = value
	case "time":
		vm.form.Time = value
	case "service":
		vm.form.Service = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (vm *DefaultViewModel) SetForm(in models.AppointmentInput) {
	vm.mu.Lock()
	vm.form = in
	vm.mu.Unlock()
}

func (vm *DefaultViewModel) Form() models.AppointmentInput {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.form
}

// IsFormComplete gates submission: true iff all four fields are non-empty.
func (vm *DefaultViewModel) IsFormComplete() bool {
	return vm.Form().Complete()
}

// Submit creates the drafted appointment. See Create.
func (vm *DefaultViewModel) Submit(ctx context.Context) (*models.Appointment, error) {
	return vm.Create(ctx, vm.Form())
}

// Create sends in as a new appointment. On success the backend record is
// appended, a confirmation is shown and the draft is cleared if it still
// holds in. On failure the draft and the list are left untouched.
func (vm *DefaultViewModel) Create(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	if !in.Complete() {
		return nil, ErrFormIncomplete
	}

	created, err := vm.client.CreateAppointment(ctx, in)
	if err != nil {
		return nil, vm.failed("Failed to save appointment", err)
	}

	vm.mu.Lock()
	next := make([]models.Appointment, 0, len(vm.appointments)+1)
	next = append(next, vm.appointments...)
	vm.appointments = append(next, *created)
	if vm.form == in {
		vm.form = models.AppointmentInput{}
	}
	vm.confirmLocked(CreatedMessage)
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.persist(ctx, snap)
	vm.logger.Info("Appointment created", zap.String("id", created.ID), zap.String("date", created.Date))
	return created, nil
}

// Delete removes the appointment from the backend and, on success, from local
// state.
func (vm *DefaultViewModel) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := vm.client.DeleteAppointment(ctx, id); err != nil {
		return vm.failed(fmt.Sprintf("Failed to delete appointment %s", id), err)
	}

	vm.mu.Lock()
	next := make([]models.Appointment, 0, len(vm.appointments))
	for _, a := range vm.appointments {
		if a.ID != id {
			next = append(next, a)
		}
	}
	vm.appointments = next
	vm.confirmLocked(DeletedMessage)
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.persist(ctx, snap)
	vm.logger.Info("Appointment deleted", zap.String("id", id))
	return nil
}

// Grouped derives the day-grouped view over the display window ending
// windowDays after today. filterDate, when set, keeps only that day.
func (vm *DefaultViewModel) Grouped(filterDate string) []models.DayGroup {
	appts := vm.Appointments()
	window := DisplayWindow(vm.now().In(vm.loc), vm.windowDays)
	return FilterDay(GroupByDay(appts, window), filterDate)
}

// Confirmation returns the banner text, or "" once it has expired.
func (vm *DefaultViewModel) Confirmation() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if !vm.confirmation.Active(vm.now()) {
		return ""
	}
	return vm.confirmation.Message
}

func (vm *DefaultViewModel) Services() []models.ServiceOption {
	return append([]models.ServiceOption(nil), vm.services...)
}

func (vm *DefaultViewModel) ErrorPolicy() ErrorPolicy {
	return vm.policy
}

func (vm *DefaultViewModel) confirmLocked(msg string) {
	vm.confirmation = models.Confirmation{Message: msg, ExpiresAt: vm.now().Add(vm.ttl)}
}

func (vm *DefaultViewModel) snapshotLocked() snapshot {
	vm.version++
	return snapshot{
		version: vm.version,
		appts:   append([]models.Appointment(nil), vm.appointments...),
	}
}

// persist writes snap unless a newer one has already been written. It runs
// outside mu and survives cancellation of the request context.
func (vm *DefaultViewModel) persist(ctx context.Context, snap snapshot) {
	vm.saveMu.Lock()
	defer vm.saveMu.Unlock()
	if snap.version <= vm.savedVersion {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
	defer cancel()
	if err := vm.store.Save(ctx, snap.appts); err != nil {
		vm.logger.Warn("Failed to save appointment snapshot", zap.Error(err))
		return
	}
	vm.savedVersion = snap.version
}

// failed logs a backend failure and applies the error policy.
func (vm *DefaultViewModel) failed(msg string, err error) error {
	vm.logger.Error(msg, zap.Error(err))
	if vm.policy == PolicySurface {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return nil
}
