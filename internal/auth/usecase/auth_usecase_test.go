package usecase

import (
	"strings"
	"testing"
	"time"

	authdomain "taskflow-backend/internal/auth/domain"
	authdto "taskflow-backend/internal/auth/dto"
	"taskflow-backend/pkg/config"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	users  map[string]*authdomain.User
	tokens map[string]*authdomain.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*authdomain.User),
		tokens: make(map[string]*authdomain.RefreshToken),
	}
}

func (r *fakeUserRepo) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Update(user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return r.tokens[token], nil
}

func (r *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteRefreshTokensByUser(userID string) error {
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.Register(&authdto.RegisterRequest{
		Email:    "a@example.com",
		Password: "hunter22",
		Name:     "A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("register returned empty tokens")
	}
	if resp.User.Password == "hunter22" {
		t.Fatal("password stored in plain text")
	}

	login, err := uc.Login(&authdto.LoginRequest{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login resolved user %q, want %q", login.User.ID, resp.User.ID)
	}

	if _, err := uc.Login(&authdto.LoginRequest{Email: "a@example.com", Password: "wrong"}); err == nil {
		t.Fatal("login with a wrong password must fail")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	req := &authdto.RegisterRequest{Email: "a@example.com", Password: "hunter22", Name: "A"}
	if _, err := uc.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := uc.Register(req); err == nil {
		t.Fatal("second registration with the same email must fail")
	}
}

func TestRegisterInvokesOnUserCreated(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	var seededFor string
	uc.SetOnUserCreated(func(userID string) { seededFor = userID })

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@example.com", Password: "hunter22", Name: "A"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if seededFor != resp.User.ID {
		t.Fatalf("callback got user %q, want %q", seededFor, resp.User.ID)
	}
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@example.com", Password: "hunter22", Name: "A"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := uc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.ID != resp.User.ID {
		t.Fatalf("validated user %q, want %q", user.ID, resp.User.ID)
	}

	if _, err := uc.ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token must not validate")
	}

	// Same structure, wrong signing key
	other := NewAuthUsecase(repo, &config.Config{JWTSecret: "another-secret", JWTAccessExpiry: time.Minute, JWTRefreshExpiry: time.Hour})
	if _, err := other.ValidateToken(resp.AccessToken); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@example.com", Password: "hunter22", Name: "A"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := uc.RefreshToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("refresh returned an empty access token")
	}
	if refreshed.User.ID != resp.User.ID {
		t.Fatalf("refresh resolved user %q, want %q", refreshed.User.ID, resp.User.ID)
	}
}

func TestRefreshTokenUnknownOrRevoked(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@example.com", Password: "hunter22", Name: "A"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := uc.Logout(resp.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := uc.RefreshToken(resp.RefreshToken); err == nil {
		t.Fatal("refresh after logout must fail")
	}
	if _, err := uc.RefreshToken(strings.Repeat("x", 32)); err == nil {
		t.Fatal("unknown refresh token must fail")
	}
}
