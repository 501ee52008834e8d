package handler_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/adewale/walletapp/internal/config"
	"github.com/adewale/walletapp/internal/handler"
	"github.com/adewale/walletapp/internal/model"
	"github.com/adewale/walletapp/internal/payment"
	"github.com/adewale/walletapp/internal/repository"
	"github.com/adewale/walletapp/internal/router"
	"github.com/adewale/walletapp/internal/utils"
	"github.com/adewale/walletapp/internal/view"
)

const testSecret = "test-session-secret"

// fakeAccounts is an in-memory AccountStore keyed by email.
type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]*model.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, username, email, phone, password string, cost int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(email)
	for _, a := range f.accounts {
		if a.Email == email || a.Username == username || a.PhoneNumber == phone {
			return "", repository.ErrAccountExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	acc := &model.Account{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	f.accounts[email] = acc
	return acc.ID.Hex(), nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID.Hex() == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) SetResetToken(_ context.Context, email, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[strings.ToLower(email)]
	if !ok {
		return repository.ErrNotFound
	}
	a.ResetToken = token
	a.ResetTokenExpiry = expiry
	return nil
}

func (f *fakeAccounts) GetByResetToken(_ context.Context, token string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ResetToken != "" && a.ResetToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) ResetPassword(_ context.Context, id, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID.Hex() == id {
			a.PasswordHash = newHash
			a.ResetToken = ""
			a.ResetTokenExpiry = time.Time{}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAccounts) CreditBalance(_ context.Context, email string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[strings.ToLower(email)]
	if !ok {
		return repository.ErrNotFound
	}
	a.Balance += amount
	return nil
}

// seed inserts an account directly, bypassing Create's hashing, so
// tests can control every field.
func (f *fakeAccounts) seed(acc *model.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if acc.ID.IsZero() {
		acc.ID = primitive.NewObjectID()
	}
	f.accounts[strings.ToLower(acc.Email)] = acc
}

// get returns the live stored record for assertions.
func (f *fakeAccounts) get(email string) *model.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[strings.ToLower(email)]
}

func (f *fakeAccounts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*model.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

// fakePayments records consumed references in memory.
type fakePayments struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakePayments() *fakePayments {
	return &fakePayments{seen: map[string]bool{}}
}

func (f *fakePayments) ConsumeReference(_ context.Context, reference, _ string, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[reference] {
		return repository.ErrDuplicateReference
	}
	f.seen[reference] = true
	return nil
}

// fakeMailer records sent reset mails; Fail makes sends error.
type fakeMailer struct {
	mu   sync.Mutex
	Fail bool
	sent []string // reset URLs in send order
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, _ string, resetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, resetURL)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeVerifier returns a canned result per reference.
type fakeVerifier struct {
	results map[string]payment.Result
}

func (f *fakeVerifier) Verify(_ context.Context, reference string) payment.Result {
	if r, ok := f.results[reference]; ok {
		return r
	}
	return payment.Result{Status: payment.StatusError}
}

// testApp wires handlers, routes and fakes into an Echo instance that
// tests drive through ServeHTTP.
type testApp struct {
	e        *echo.Echo
	accounts *fakeAccounts
	sessions *fakeSessions
	payments *fakePayments
	mail     *fakeMailer
	verifier *fakeVerifier
}

func newTestApp() *testApp {
	cfg := config.Config{
		SessionSecret: testSecret,
		BcryptCost:    bcrypt.MinCost,
		BaseURL:       "http://localhost:3000",
	}
	app := &testApp{
		accounts: newFakeAccounts(),
		sessions: newFakeSessions(),
		payments: newFakePayments(),
		mail:     &fakeMailer{},
		verifier: &fakeVerifier{results: map[string]payment.Result{}},
	}
	e := echo.New()
	e.Renderer = view.New()
	a := handler.NewAuthHandler(cfg, app.accounts, app.sessions)
	p := handler.NewPasswordHandler(cfg, app.accounts, app.mail)
	pay := handler.NewPaymentHandler(app.accounts, app.payments, app.verifier)
	router.RegisterRoutes(e, a, p)
	router.RegisterProtected(e, a, pay, cfg.SessionSecret, app.sessions, app.accounts)
	app.e = e
	return app
}
