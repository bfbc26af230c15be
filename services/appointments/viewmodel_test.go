package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nataliestudio/models"
)

type stubBackend struct {
	mu        sync.Mutex
	list      []models.Appointment
	listErr   error
	createErr error
	deleteErr error
	nextID    string
	created   []models.AppointmentInput
	deleted   []string
}

func (s *stubBackend) ListAppointments(context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Appointment{}, s.list...), nil
}

func (s *stubBackend) CreateAppointment(_ context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, in)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Appointment{ID: s.nextID, Name: in.Name, Date: in.Date, Time: in.Time, Service: in.Service}, nil
}

func (s *stubBackend) DeleteAppointment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func (s *stubBackend) KeepAlive(context.Context) error { return nil }

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestViewModel(t *testing.T, be *stubBackend, policy ErrorPolicy) (*DefaultViewModel, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	vm := NewViewModel(be, Options{
		Policy:   policy,
		Location: time.UTC,
		Now:      clock.Now,
	})
	return vm, clock
}

var fullForm = models.AppointmentInput{Name: "Ana", Date: "2024-06-01", Time: "09:00", Service: "Tuns"}

func TestActivate_LoadsCollection(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "a"}, {ID: "b"}}}
	vm, _ := newTestViewModel(t, be, PolicySwallow)

	assert.False(t, vm.Loaded())
	require.NoError(t, vm.Activate(context.Background()))
	assert.True(t, vm.Loaded())
	assert.Len(t, vm.Appointments(), 2)
}

func TestActivate_FailureKeepsPriorState(t *testing.T) {
	be := &stubBackend{listErr: errors.New("connection refused")}
	vm, _ := newTestViewModel(t, be, PolicySwallow)

	require.NoError(t, vm.Activate(context.Background()))
	assert.False(t, vm.Loaded())
	assert.Empty(t, vm.Appointments())
}

func TestActivate_FailureSurfaced(t *testing.T) {
	be := &stubBackend{listErr: errors.New("connection refused")}
	vm, _ := newTestViewModel(t, be, PolicySurface)

	err := vm.Activate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestActivate_SeedsFromSnapshot(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), []models.Appointment{{ID: "cached"}}))

	be := &stubBackend{listErr: errors.New("cold start")}
	vm := NewViewModel(be, Options{Store: store})

	require.NoError(t, vm.Activate(context.Background()))
	assert.False(t, vm.Loaded())
	require.Len(t, vm.Appointments(), 1)
	assert.Equal(t, "cached", vm.Appointments()[0].ID)

	be.listErr = nil
	be.list = []models.Appointment{{ID: "fresh"}}
	require.NoError(t, vm.Refresh(context.Background()))
	assert.Equal(t, "fresh", vm.Appointments()[0].ID)

	saved, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", saved[0].ID)
}

func TestFormGate(t *testing.T) {
	vm, _ := newTestViewModel(t, &stubBackend{}, PolicySwallow)
	assert.False(t, vm.IsFormComplete())

	require.NoError(t, vm.SetField("name", "Ana"))
	require.NoError(t, vm.SetField("date", "2024-06-01"))
	require.NoError(t, vm.SetField("time", "09:00"))
	assert.False(t, vm.IsFormComplete())

	require.NoError(t, vm.SetField("service", "Tuns"))
	assert.True(t, vm.IsFormComplete())

	require.NoError(t, vm.SetField("time", ""))
	assert.False(t, vm.IsFormComplete())

	err := vm.SetField("phone", "123")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSubmit_Incomplete(t *testing.T) {
	be := &stubBackend{}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	vm.SetForm(models.AppointmentInput{Name: "Ana"})

	_, err := vm.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormIncomplete)
	assert.Empty(t, be.created)
}

func TestSubmit_Success(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "old"}}, nextID: "new-1"}
	vm, clock := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))
	vm.SetForm(fullForm)

	created, err := vm.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, []models.AppointmentInput{fullForm}, be.created)

	appts := vm.Appointments()
	require.Len(t, appts, 2)
	assert.Equal(t, "new-1", appts[1].ID)
	assert.Equal(t, models.AppointmentInput{}, vm.Form())
	assert.False(t, vm.IsFormComplete())

	assert.Equal(t, CreatedMessage, vm.Confirmation())
	clock.Advance(2999 * time.Millisecond)
	assert.Equal(t, CreatedMessage, vm.Confirmation())
	clock.Advance(time.Millisecond)
	assert.Empty(t, vm.Confirmation())
}

func TestSubmit_FailureLeavesStateUntouched(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "old"}}, createErr: errors.New("500")}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))
	vm.SetForm(fullForm)

	created, err := vm.Submit(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, created)
	assert.Equal(t, fullForm, vm.Form())
	assert.Len(t, vm.Appointments(), 1)
	assert.Empty(t, vm.Confirmation())
}

func TestSubmit_FailureSurfaced(t *testing.T) {
	be := &stubBackend{createErr: errors.New("500")}
	vm, _ := newTestViewModel(t, be, PolicySurface)
	vm.SetForm(fullForm)

	_, err := vm.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, fullForm, vm.Form())
}

func TestDelete_Success(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	vm, clock := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))

	require.NoError(t, vm.Delete(context.Background(), "b"))
	assert.Equal(t, []string{"b"}, be.deleted)
	assert.Equal(t, []models.Appointment{{ID: "a"}, {ID: "c"}}, vm.Appointments())
	assert.Equal(t, DeletedMessage, vm.Confirmation())

	clock.Advance(3 * time.Second)
	assert.Empty(t, vm.Confirmation())
}

func TestDelete_FailureLeavesState(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "a"}}, deleteErr: errors.New("404")}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))

	assert.NoError(t, vm.Delete(context.Background(), "a"))
	assert.Len(t, vm.Appointments(), 1)
	assert.Empty(t, vm.Confirmation())
}

func TestDelete_MissingID(t *testing.T) {
	be := &stubBackend{}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	assert.ErrorIs(t, vm.Delete(context.Background(), ""), ErrMissingID)
	assert.Empty(t, be.deleted)
}

func TestGrouped_UsesClockAndFilter(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{
		{ID: "late", Date: "2024-06-01", Time: "14:30"},
		{ID: "early", Date: "2024-06-01", Time: "09:00"},
		{ID: "far", Date: "2024-09-05", Time: "10:00"},
	}}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))

	groups := vm.Grouped("")
	require.Len(t, groups, 91)
	assert.Equal(t, "2024-06-01", groups[0].Date)
	require.Len(t, groups[0].Appointments, 2)
	assert.Equal(t, "early", groups[0].Appointments[0].ID)

	only := vm.Grouped("2024-06-01")
	require.Len(t, only, 1)
	assert.Len(t, only[0].Appointments, 2)

	assert.Empty(t, vm.Grouped("2024-09-05"))
}

func TestGrouped_UnboundedWindow(t *testing.T) {
	be := &stubBackend{list: []models.Appointment{{ID: "far", Date: "2024-09-05", Time: "10:00"}}}
	vm := NewViewModel(be, Options{WindowDays: -1})
	require.NoError(t, vm.Activate(context.Background()))

	groups := vm.Grouped("")
	require.Len(t, groups, 1)
	assert.Equal(t, "2024-09-05", groups[0].Date)
}

func TestDefaults(t *testing.T) {
	vm := NewViewModel(&stubBackend{}, Options{})
	assert.Len(t, vm.Services(), 8)
	assert.Equal(t, PolicySwallow, vm.ErrorPolicy())
}

func TestParseErrorPolicy(t *testing.T) {
	p, err := ParseErrorPolicy("SURFACE")
	require.NoError(t, err)
	assert.Equal(t, PolicySurface, p)

	p, err = ParseErrorPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicySwallow, p)

	_, err = ParseErrorPolicy("retry")
	assert.Error(t, err)
}

func TestConcurrentDeletes(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	var list []models.Appointment
	for _, id := range ids {
		list = append(list, models.Appointment{ID: id, Date: "2024-06-01", Time: "10:00"})
	}
	be := &stubBackend{list: list}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	require.NoError(t, vm.Activate(context.Background()))

	var wg sync.WaitGroup
	for _, id := range ids[:4] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, vm.Delete(context.Background(), id))
		}(id)
	}
	wg.Wait()

	remaining := vm.Appointments()
	require.Len(t, remaining, 2)
	assert.ElementsMatch(t, []string{"e", "f"}, []string{remaining[0].ID, remaining[1].ID})
	assert.Len(t, be.deleted, 4)
}

func TestCreate_InterleavedDrafts(t *testing.T) {
	be := &stubBackend{nextID: "id"}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	bob := models.AppointmentInput{Name: "Bob", Date: "2024-06-02", Time: "11:00", Service: "Vopsit"}

	vm.SetForm(fullForm)
	vm.SetForm(bob)

	createdA, err := vm.Create(context.Background(), fullForm)
	require.NoError(t, err)
	require.NotNil(t, createdA)
	assert.Equal(t, "Ana", createdA.Name)
	assert.Equal(t, bob, vm.Form())

	createdB, err := vm.Create(context.Background(), bob)
	require.NoError(t, err)
	require.NotNil(t, createdB)
	assert.Equal(t, "Bob", createdB.Name)
	assert.Equal(t, models.AppointmentInput{}, vm.Form())

	assert.Equal(t, []models.AppointmentInput{fullForm, bob}, be.created)
	appts := vm.Appointments()
	require.Len(t, appts, 2)
	assert.Equal(t, "Ana", appts[0].Name)
	assert.Equal(t, "Bob", appts[1].Name)
}

func TestCreate_ConcurrentRequests(t *testing.T) {
	be := &stubBackend{nextID: "id"}
	vm, _ := newTestViewModel(t, be, PolicySwallow)
	names := []string{"Ana", "Bob", "Cora", "Dan", "Ema", "Fane"}

	var wg sync.WaitGroup
	results := make([]string, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			in := models.AppointmentInput{Name: name, Date: "2024-06-01", Time: "10:00", Service: "Tuns"}
			vm.SetForm(in)
			created, err := vm.Create(context.Background(), in)
			if assert.NoError(t, err) && assert.NotNil(t, created) {
				results[i] = created.Name
			}
		}(i, name)
	}
	wg.Wait()

	assert.Equal(t, names, results)
	stored := make([]string, 0, len(names))
	for _, a := range vm.Appointments() {
		stored = append(stored, a.Name)
	}
	assert.ElementsMatch(t, names, stored)
}

func TestCreate_Incomplete(t *testing.T) {
	be := &stubBackend{}
	vm, _ := newTestViewModel(t, be, PolicySwallow)

	_, err := vm.Create(context.Background(), models.AppointmentInput{Name: "Ana", Date: "2024-06-01"})
	assert.ErrorIs(t, err, ErrFormIncomplete)
	assert.Empty(t, be.created)
}

type blockingStore struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	ctxErr  error
}

func newBlockingStore() *blockingStore {
	return &blockingStore{started: make(chan struct{}), release: make(chan struct{})}
}

func (s *blockingStore) Load(context.Context) ([]models.Appointment, bool, error) {
	return nil, false, nil
}

func (s *blockingStore) Save(ctx context.Context, _ []models.Appointment) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	s.ctxErr = ctx.Err()
	return nil
}

func TestSnapshotWriteDoesNotBlockReads(t *testing.T) {
	store := newBlockingStore()
	be := &stubBackend{list: []models.Appointment{{ID: "a", Date: "2024-06-01", Time: "09:00"}}}
	vm := NewViewModel(be, Options{Store: store})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- vm.Refresh(ctx) }()

	<-store.started
	cancel()

	read := make(chan int, 1)
	go func() { read <- len(vm.Appointments()) }()
	select {
	case n := <-read:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("reads blocked while the snapshot was being written")
	}

	close(store.release)
	require.NoError(t, <-done)
	assert.NoError(t, store.ctxErr)
}

func TestSnapshotKeepsNewestState(t *testing.T) {
	store := NewMemoryStore()
	be := &stubBackend{list: []models.Appointment{{ID: "a"}, {ID: "b"}}}
	vm := NewViewModel(be, Options{Store: store})
	require.NoError(t, vm.Activate(context.Background()))

	require.NoError(t, vm.Delete(context.Background(), "a"))

	saved, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, saved, 1)
	assert.Equal(t, "b", saved[0].ID)
}
