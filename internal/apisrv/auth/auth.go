package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/edupath/internal/auth/jwt"
	"github.com/jekabolt/edupath/internal/auth/pwhash"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/ratelimit"
)

// CookieName carries the session token in browsers.
const CookieName = "edupath_session"

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string           `mapstructure:"jwt_secret"`
	JWTTTL                   time.Duration    `mapstructure:"jwt_ttl"`
	PasswordHasherSaltSize   int              `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int              `mapstructure:"password_hasher_iterations"`
	CookieSecure             bool             `mapstructure:"cookie_secure"`
	RateLimit                ratelimit.Config `mapstructure:"rate_limit"`
}

// Session is an authenticated user.
type Session struct {
	UserId  string      `json:"user_id"`
	Role    entity.Role `json:"role"`
	Expires time.Time   `json:"expires"`
}

// Server signs users up and in and guards routes behind a session.
type Server struct {
	repo    dependency.Repository
	pwhash  *pwhash.PasswordHasher
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
	limiter *ratelimit.MultiKeyLimiter
	c       *Config
}

// New creates a new auth server.
func New(c *Config, repo dependency.Repository) (*Server, error) {
	if len(c.JWTSecret) < 16 {
		return nil, fmt.Errorf("jwt secret must be at least 16 bytes")
	}
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	ttl := c.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		repo:    repo,
		pwhash:  ph,
		JwtAuth: jwt.New(c.JWTSecret),
		jwtTTL:  ttl,
		limiter: ratelimit.NewMultiKeyLimiter(&c.RateLimit),
		c:       c,
	}, nil
}

func (s *Server) Close() {
	s.limiter.Close()
}

// Signup creates a trainee account with its profile and returns a session
// token.
func (s *Server) Signup(ctx context.Context, clientIP string, req *form.SignupRequest) (*entity.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}
	if err := s.limiter.CheckSignup(clientIP); err != nil {
		return nil, "", err
	}
	hash, err := s.pwhash.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}

	var user *entity.User
	err = s.repo.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		var err error
		user, err = rep.Users().AddUser(ctx, &entity.UserInsert{
			Email:        req.Email,
			PasswordHash: hash,
			Role:         entity.RoleTrainee,
		})
		if err != nil {
			return err
		}
		return rep.Profiles().UpsertProfile(ctx, user.Id, &entity.ProfileUpsert{
			FullName:      strings.TrimSpace(req.FullName),
			TrainingField: sql.NullString{String: req.TrainingField, Valid: req.TrainingField != ""},
		})
	})
	if err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL, user.Id, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	slog.Default().InfoContext(ctx, "user signed up",
		slog.String("user_id", user.Id),
	)
	return user, token, nil
}

// Login checks the credentials and returns a session token. Unknown emails
// and wrong passwords fail the same way.
func (s *Server) Login(ctx context.Context, clientIP string, req *form.LoginRequest) (*entity.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.limiter.CheckLogin(clientIP, email); err != nil {
		return nil, "", err
	}

	user, err := s.repo.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("login: %w", gerr.ErrInvalidCredential)
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if err := s.pwhash.Validate(req.Password, user.PasswordHash); err != nil {
		return nil, "", fmt.Errorf("login: %w", gerr.ErrInvalidCredential)
	}
	s.limiter.LoginSucceeded(email)

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL, user.Id, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AddUser creates an account with any role. It backs the CLI bootstrap of
// staff and admin accounts.
func (s *Server) AddUser(ctx context.Context, req *form.AddUserRequest) (*entity.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	hash, err := s.pwhash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.Users().AddUser(ctx, &entity.UserInsert{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.Role(req.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	return user, nil
}

// SetSessionCookie stores token in the browser.
func (s *Server) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwtTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie signs the browser out.
func (s *Server) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest reads the bearer header first, then the cookie.
func tokenFromRequest(r *http.Request) string {
	if tok := jwtauth.TokenFromHeader(r); tok != "" {
		return tok
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SessionFromRequest verifies the request token. It fails with
// gerr.ErrUnauthenticated when there is no valid token.
func (s *Server) SessionFromRequest(r *http.Request) (*Session, error) {
	tok := tokenFromRequest(r)
	if tok == "" {
		return nil, gerr.ErrUnauthenticated
	}
	claims, err := jwt.VerifyToken(s.JwtAuth, tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gerr.ErrUnauthenticated, err)
	}
	role := entity.Role(claims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", gerr.ErrUnauthenticated, claims.Role)
	}
	return &Session{UserId: claims.Subject, Role: role, Expires: claims.Expires}, nil
}
