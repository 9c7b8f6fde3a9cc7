package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/internal/notify"
	"account-service/pkg/security"
	"account-service/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeAccountRepo stores copies so callers cannot mutate saved state without Save.
type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	byID     map[int64]entity.Account
	saveErr  error
	builder  repository.AccountRepository
	saveHook func(*entity.Account)
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    make(map[int64]entity.Account),
		builder: repository.NewAccountRepository(nil, zap.NewNop()),
	}
}

func (r *fakeAccountRepo) Create(fields entity.Account) *entity.Account {
	return r.builder.Create(fields)
}

func (r *fakeAccountRepo) Save(_ context.Context, account *entity.Account) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveHook != nil {
		r.saveHook(account)
	}
	if r.saveErr != nil {
		return nil, r.saveErr
	}

	for id, existing := range r.byID {
		if existing.Email == account.Email && id != account.ID {
			return nil, repository.ErrDuplicateEmail
		}
	}

	if account.ID == 0 {
		r.nextID++
		account.ID = r.nextID
	} else if _, ok := r.byID[account.ID]; !ok {
		return nil, repository.ErrAccountNotFound
	}

	r.byID[account.ID] = *account
	return account, nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Account
	for id := int64(1); id <= r.nextID; id++ {
		a, ok := r.byID[id]
		if !ok || a.IsDeleted() {
			continue
		}
		out = append(out, &a)
	}

	if offset >= len(out) {
		return nil, nil
	}
	end := min(offset+limit, len(out))
	return out[offset:end], nil
}

func (r *fakeAccountRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, a := range r.byID {
		if !a.IsDeleted() {
			n++
		}
	}
	return n, nil
}

// stored returns the persisted state for an email.
func (r *fakeAccountRepo) stored(email string) *entity.Account {
	a, _ := r.FindByEmail(context.Background(), email)
	return a
}

type fakeRoleRepo struct {
	mu     sync.Mutex
	roles  []entity.Role
	seeded [][]string
	err    error
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{}
	for i, n := range names {
		r.roles = append(r.roles, entity.Role{ID: int64(i + 1), Name: n})
	}
	return r
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id int64) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.ID == id {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) EnsureDefaults(_ context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.seeded = append(r.seeded, names)
	return nil
}

type sentOTP struct {
	To      string
	Code    string
	Name    string
	Purpose notify.Purpose
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentOTP
	err  error
}

func (s *fakeSender) SendOTP(_ context.Context, to, code, displayName string, purpose notify.Purpose) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentOTP{To: to, Code: code, Name: displayName, Purpose: purpose})
	return nil
}

func (s *fakeSender) last() sentOTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentOTP{}
	}
	return s.sent[len(s.sent)-1]
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

var errSMTPDown = errors.New("smtp down")

// downTicketRepo fails every call, like an unreachable redis.
type downTicketRepo struct{}

var errRedisDown = errors.New("redis down")

func (downTicketRepo) Put(context.Context, int64, string, time.Duration) error {
	return errRedisDown
}

func (downTicketRepo) Consume(context.Context, int64, string) (bool, error) {
	return false, errRedisDown
}

type harness struct {
	svc      *authService
	accounts *fakeAccountRepo
	roles    *fakeRoleRepo
	sender   *fakeSender
	clock    *fakeClock
	tokens   *security.TokenIssuer
	config   *utils.Config
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:      utils.AppConfig{Name: "account-service", Env: "test", DefaultRole: entity.RoleCustomer},
		JWT:      utils.JWTConfig{Secret: testSecret, Issuer: "account-service", ExpiryHours: 24},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost, RecoveryMinutes: 10},
		Email:    utils.EmailConfig{Driver: "log", TimeoutSeconds: 1},
		OTP:      utils.OTPConfig{ExpiryMinutes: 60, Length: 6},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := testConfig()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	accounts := newFakeAccountRepo()
	roles := newFakeRoleRepo(entity.DefaultRoles...)
	sender := &fakeSender{}
	tokens := security.NewTokenIssuer(config.JWT.Secret, config.JWT.Issuer, config.JWT.TokenLifetime())

	repo := &repository.Repository{
		Account:        accounts,
		Role:           roles,
		RecoveryTicket: repository.NewMemoryTicketRepository(clock.Now),
	}

	svc := NewAuthService(repo, tokens, sender, config, zap.NewNop()).(*authService)
	svc.now = clock.Now

	return &harness{
		svc:      svc,
		accounts: accounts,
		roles:    roles,
		sender:   sender,
		clock:    clock,
		tokens:   tokens,
		config:   config,
	}
}
