package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jekabolt/edupath/internal/auth/jwt"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/ratelimit"
	"github.com/jekabolt/edupath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret = "a-test-secret-of-32-characters!!"
	password  = "testPassword"
	clientIP  = "203.0.113.7"
)

func newTestServer(t *testing.T, rl ratelimit.Config) (*Server, *store.SQLStore) {
	t.Helper()
	db, err := store.New(context.Background(), store.Config{
		Driver:             store.DriverSQLite,
		DSN:                fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		Automigrate:        true,
		MaxOpenConnections: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	s, err := New(&Config{
		JWTSecret:                jwtSecret,
		JWTTTL:                   time.Hour,
		PasswordHasherIterations: 1000,
		RateLimit:                rl,
	}, db)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, db
}

func TestNewRejectsShortSecret(t *testing.T) {
	_, err := New(&Config{JWTSecret: "short"}, nil)
	assert.Error(t, err)
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	s, db := newTestServer(t, ratelimit.Config{})

	user, token, err := s.Signup(ctx, clientIP, &form.SignupRequest{
		Email:         "Trainee@Example.com",
		Password:      password,
		FullName:      " Amina ",
		TrainingField: string(entity.FieldDigital),
	})
	require.NoError(t, err)
	assert.Equal(t, "trainee@example.com", user.Email)
	assert.Equal(t, entity.RoleTrainee, user.Role)

	claims, err := jwt.VerifyToken(s.JwtAuth, token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, claims.Subject)
	assert.Equal(t, "trainee", claims.Role)

	p, err := db.Profiles().GetProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Amina", p.FullName)
	assert.Equal(t, "digital", p.TrainingField.String)

	_, _, err = s.Signup(ctx, clientIP, &form.SignupRequest{Email: "trainee@example.com", Password: password, FullName: "x"})
	assert.ErrorIs(t, err, gerr.ErrAlreadyExists)

	logged, token, err := s.Login(ctx, clientIP, &form.LoginRequest{Email: "TRAINEE@example.com", Password: password})
	require.NoError(t, err)
	assert.Equal(t, user.Id, logged.Id)
	assert.NotEmpty(t, token)

	_, _, err = s.Login(ctx, clientIP, &form.LoginRequest{Email: "trainee@example.com", Password: "wrongPassword"})
	assert.ErrorIs(t, err, gerr.ErrInvalidCredential)
	_, _, err = s.Login(ctx, clientIP, &form.LoginRequest{Email: "nobody@example.com", Password: password})
	assert.ErrorIs(t, err, gerr.ErrInvalidCredential)
}

func TestSignupValidation(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{})
	_, _, err := s.Signup(context.Background(), clientIP, &form.SignupRequest{Email: "nope", Password: "short", TrainingField: "astronomie"})
	require.ErrorIs(t, err, gerr.ErrValidation)

	var ve *gerr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "full_name")
	assert.Contains(t, ve.Fields, "training_field")
}

func TestLoginRateLimited(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{LoginPerIP: 2, LoginPerEmail: 10})
	ctx := context.Background()
	req := &form.LoginRequest{Email: "nobody@example.com", Password: password}

	for i := 0; i < 2; i++ {
		_, _, err := s.Login(ctx, clientIP, req)
		assert.ErrorIs(t, err, gerr.ErrInvalidCredential)
	}
	_, _, err := s.Login(ctx, clientIP, req)
	assert.ErrorIs(t, err, gerr.ErrRateLimited)
}

func TestAddUser(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{})
	u, err := s.AddUser(context.Background(), &form.AddUserRequest{Email: "head@example.com", Password: password, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, err = s.AddUser(context.Background(), &form.AddUserRequest{Email: "x@example.com", Password: password, Role: "root"})
	assert.ErrorIs(t, err, gerr.ErrValidation)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sess.UserId))
	})
}

func apiDeny(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), gerr.HTTPStatus(err))
}

func TestRequireSession(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{})
	token, err := jwt.NewToken(s.JwtAuth, time.Hour, "user-1", "trainee")
	require.NoError(t, err)

	api := s.RequireSession(apiDeny)(okHandler())
	page := s.RequireSession(RedirectTo("/auth"))(okHandler())

	// bearer header
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	// cookie
	req = httptest.NewRequest(http.MethodGet, "/library", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// bad token
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer bad token")
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// no token on a page
	req = httptest.NewRequest(http.MethodGet, "/library?x=1", nil)
	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth?next=%2Flibrary%3Fx%3D1", rec.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{})
	h := s.RequireRole(apiDeny, entity.RoleStaff, entity.RoleAdmin)(okHandler())

	for role, code := range map[string]int{
		"admin":   http.StatusOK,
		"staff":   http.StatusOK,
		"trainee": http.StatusForbidden,
		"root":    http.StatusUnauthorized,
	} {
		token, err := jwt.NewToken(s.JwtAuth, time.Hour, "user-1", role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/gallery", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, role)
	}

	page := s.RequireRole(RedirectTo("/auth"), entity.RoleAdmin)(okHandler())
	token, err := jwt.NewToken(s.JwtAuth, time.Hour, "user-1", "trainee")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSessionCookies(t *testing.T) {
	s, _ := newTestServer(t, ratelimit.Config{})
	rec := httptest.NewRecorder()
	s.SetSessionCookie(rec, "tok")
	s.ClearSessionCookie(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[1].MaxAge < 0)
	assert.True(t, strings.HasPrefix(cookies[1].Name, "edupath"))
}
