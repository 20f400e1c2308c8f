package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// RoleClaim carries the user role.
const RoleClaim = "role"

// Claims are the session facts carried by a token.
type Claims struct {
	Subject string
	Role    string
	Expires time.Time
}

func New(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// VerifyToken checks signature and expiry and returns the claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}
	if t.Subject() == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	c := &Claims{
		Subject: t.Subject(),
		Expires: t.Expiration(),
	}
	if v, ok := t.Get(RoleClaim); ok {
		c.Role, _ = v.(string)
	}
	return c, nil
}

// NewToken creates a JWT for subject with the role claim.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject, role string) (string, error) {
	claims := map[string]interface{}{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims[RoleClaim] = role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}
