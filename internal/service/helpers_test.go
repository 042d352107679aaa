package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kioskauth-server/internal/biometric"
	"github.com/dtroode/kioskauth-server/internal/mocks"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/repository/memory"
	"github.com/dtroode/kioskauth-server/internal/testutil"
	"github.com/dtroode/kioskauth-server/internal/token"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeIndex records index notifications.
type fakeIndex struct {
	mu          sync.Mutex
	candidates  []model.Candidate
	invalidated int
	removed     []uuid.UUID
}

func (f *fakeIndex) Snapshot(model.Role) []model.Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.candidates
}

func (f *fakeIndex) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

func (f *fakeIndex) Remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
}

var testBiometricConfig = BiometricConfig{
	EnrollableRole: model.RoleStudent,
	Dimension:      model.DefaultDescriptorDimension,
	ExtractTimeout: time.Second,
}

// kioskEnv wires the real services on the memory store with a mocked extractor.
type kioskEnv struct {
	clock      *fakeClock
	accounts   *memory.AccountRepository
	terminals  *memory.TerminalRepository
	attempts   *memory.AttemptRepository
	extractor  *mocks.Extractor
	index      *biometric.Index
	tokens     model.TokenManager
	lockout    *Lockout
	throttle   *Throttle
	enrollment *Enrollment
	admin      *Accounts
	kiosk      *Kiosk
}

func newKioskEnv(t *testing.T) *kioskEnv {
	t.Helper()

	log := testutil.MakeNoopLogger()
	db := memory.NewDB()
	env := &kioskEnv{
		clock:     newFakeClock(),
		accounts:  memory.NewAccountRepository(db),
		terminals: memory.NewTerminalRepository(db),
		attempts:  memory.NewAttemptRepository(db),
		extractor: &mocks.Extractor{},
		tokens:    token.NewJWT("test-secret"),
	}
	env.index = biometric.NewIndex(env.accounts, model.RoleStudent, log)
	env.lockout = NewLockout(env.accounts, model.DefaultLockoutPolicy(), log)
	env.lockout.now = env.clock.Now
	env.throttle = NewThrottle(3, time.Minute, time.Hour)
	env.throttle.now = env.clock.Now
	env.enrollment = NewEnrollment(env.accounts, env.extractor, env.index, nil, testBiometricConfig, log)
	env.enrollment.now = env.clock.Now
	env.admin = NewAccounts(env.accounts, env.terminals, env.index, nil, log)
	env.kiosk = NewKiosk(
		env.accounts,
		env.attempts,
		env.extractor,
		env.index,
		biometric.NewMatcher(biometric.DefaultThreshold),
		env.lockout,
		NewDeviceGate(env.terminals),
		NewSessionIssuer(env.tokens, DefaultSessionTTL),
		env.throttle,
		testBiometricConfig,
		log,
	)
	env.kiosk.now = env.clock.Now
	return env
}

// enroll creates a student enrolled with descriptor and returns its id.
// The extractor answers image with descriptor from then on.
func (e *kioskEnv) enroll(t *testing.T, name string, descriptor model.Descriptor) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	acc, err := e.admin.Create(ctx, CreateAccountRequest{DisplayName: name, Role: model.RoleStudent})
	require.NoError(t, err)

	image := []byte("face-of-" + name)
	e.extractor.On("Describe", mock.Anything, image).Return(descriptor, nil)

	require.NoError(t, e.enrollment.Enroll(ctx, EnrollRequest{AccountID: acc.ID, Role: model.RoleStudent, Image: image}))
	require.NoError(t, e.index.Refresh(ctx))
	return acc.ID
}

func (e *kioskEnv) terminal(t *testing.T, hardwareID string) model.Terminal {
	t.Helper()
	term, err := e.admin.RegisterTerminal(context.Background(), RegisterTerminalRequest{HardwareID: hardwareID, HomeID: "main-hall"})
	require.NoError(t, err)
	return term
}

func (e *kioskEnv) login(name, hardwareID string) (model.Session, error) {
	return e.kiosk.Login(context.Background(), LoginRequest{
		HardwareID: hardwareID,
		Image:      []byte("face-of-" + name),
	})
}

func (e *kioskEnv) account(t *testing.T, id uuid.UUID) model.Account {
	t.Helper()
	acc, err := e.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return acc
}
