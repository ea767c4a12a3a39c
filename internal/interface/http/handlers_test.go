package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/config"
	"github.com/oksasatya/cardvault/internal/application"
	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/domain/repository"
	"github.com/oksasatya/cardvault/internal/interface/middleware"
	"github.com/oksasatya/cardvault/pkg/helpers"
	"github.com/oksasatya/cardvault/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*entity.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

type fakeIdentities struct {
	mu    sync.Mutex
	links map[string]*entity.LinkedIdentity
	seq   int
}

func newFakeIdentities() *fakeIdentities {
	return &fakeIdentities{links: make(map[string]*entity.LinkedIdentity)}
}

func (f *fakeIdentities) Create(_ context.Context, li *entity.LinkedIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := li.Provider + "/" + li.ProviderAccountID
	if _, ok := f.links[key]; ok {
		return repository.ErrDuplicateIdentity
	}
	f.seq++
	li.ID = fmt.Sprintf("link-%d", f.seq)
	cp := *li
	f.links[key] = &cp
	return nil
}

func (f *fakeIdentities) GetByProviderAccount(_ context.Context, provider, providerAccountID string) (*entity.LinkedIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	li, ok := f.links[provider+"/"+providerAccountID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *li
	return &cp, nil
}

type fakeCards struct {
	mu    sync.Mutex
	cards map[string]*entity.CreditCard
	seq   int
}

func newFakeCards() *fakeCards {
	return &fakeCards{cards: make(map[string]*entity.CreditCard)}
}

func (f *fakeCards) Create(_ context.Context, card *entity.CreditCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	card.ID = fmt.Sprintf("card-%d", f.seq)
	cp := *card
	f.cards[card.ID] = &cp
	return nil
}

func (f *fakeCards) GetByIDForUser(_ context.Context, id, userID string) (*entity.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[id]
	if !ok || card.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *card
	return &cp, nil
}

func (f *fakeCards) ListByUser(_ context.Context, userID string) ([]*entity.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.CreditCard, 0)
	for _, card := range f.cards {
		if card.UserID == userID {
			cp := *card
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCards) Update(_ context.Context, card *entity.CreditCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.cards[card.ID]
	if !ok || existing.UserID != card.UserID {
		return repository.ErrNotFound
	}
	cp := *card
	f.cards[card.ID] = &cp
	return nil
}

func (f *fakeCards) DeleteByIDForUser(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[id]
	if !ok || card.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.cards, id)
	return nil
}

var (
	_ repository.UserRepository           = (*fakeUsers)(nil)
	_ repository.LinkedIdentityRepository = (*fakeIdentities)(nil)
	_ repository.CreditCardRepository     = (*fakeCards)(nil)
)

// testEnv wires handlers against in-memory stores, mirroring the module
// route layout minus the rate limiters.
type testEnv struct {
	router   *gin.Engine
	sessions *helpers.SessionManager
	auth     *application.AuthService
	cards    *application.CardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		BaseURL:     "http://localhost:8080",
		SignInPath:  "/auth/signin",
		LandingPath: "/dashboard",
	}
	logger := silentLogger()
	sessions := helpers.NewSessionManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(newFakeUsers(), newFakeIdentities(), sessions, logger)
	cardSvc := application.NewCardService(newFakeCards(), logger)

	authHandler := NewAuthHandler(authSvc, nil, nil, logger, cfg)
	cardHandler := NewCardHandler(cardSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/session", authHandler.Session)
	api.POST("/auth/logout", middleware.SessionAuth(sessions), authHandler.Logout)

	cards := api.Group("/cards", middleware.SessionAuth(sessions))
	cards.GET("", cardHandler.List)
	cards.POST("", cardHandler.Create)
	cards.PUT("/:id", cardHandler.Update)
	cards.DELETE("/:id", cardHandler.Delete)

	return &testEnv{router: r, sessions: sessions, auth: authSvc, cards: cardSvc}
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			return ck
		}
	}
	return nil
}
