package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/application/user/usecases"
	"pulsefit/internal/domain/user"
	"pulsefit/internal/shared/constants"
	"pulsefit/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*user.User{}}
}

func (r *fakeUserRepo) add(t *testing.T, id uint, email, passwordHash, role string, mustChange bool) {
	t.Helper()
	u, err := user.ReconstructUser(id, email, passwordHash, user.Role(role), mustChange, time.Now(), time.Now())
	require.NoError(t, err)
	r.users[u.Email()] = u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error      { return nil }

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.users[strings.ToLower(email)], nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[strings.ToLower(email)]
	return ok, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return stderrors.New("mismatch")
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(userID uint, email, role string) (string, int64, error) {
	return "stub-token", 3600, nil
}

func newAuthTestRouter(repo *fakeUserRepo) *gin.Engine {
	log := logger.NewLogger()
	loginUC := usecases.NewLoginUseCase(repo, plainHasher{}, stubTokens{}, log)
	changeUC := usecases.NewChangePasswordUseCase(repo, plainHasher{}, log)
	h := NewAuthHandler(loginUC, changeUC)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/change-password", func(c *gin.Context) {
		// stands in for the auth middleware
		c.Set(constants.ContextKeyUserID, uint(1))
		c.Next()
	}, h.ChangePassword)
	return r
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, 1, "ana@example.com", "hashed:secret99", "member", true)
	r := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret99"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token              string `json:"token"`
			MustChangePassword bool   `json:"must_change_password"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "stub-token", body.Data.Token)
	assert.True(t, body.Data.MustChangePassword)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, 1, "ana@example.com", "hashed:secret99", "member", false)
	r := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginInvalidBody(t *testing.T) {
	r := newAuthTestRouter(newFakeUserRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, 1, "ana@example.com", "hashed:secret99", "member", true)
	r := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password",
		strings.NewReader(`{"old_password":"secret99","new_password":"newpass123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	u, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.False(t, u.MustChangePassword(), "successful change consumes the reset flag")
}
