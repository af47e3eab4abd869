package sessions

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/questionboard/questionboard/internal/tokens"
)

// Mode selects the session token format.
type Mode string

const (
	// ModeSigned issues expiring HS256 tokens validated on every request.
	ModeSigned Mode = "signed"
	// ModeOpaque issues random tokens; possession of the cookie is the only check.
	ModeOpaque Mode = "opaque"
)

const (
	DefaultCookieName = "admin_token"
	DefaultTTL        = 7 * 24 * time.Hour
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Options configure a Gate.
type Options struct {
	Password   string
	Mode       Mode
	Secret     []byte
	TTL        time.Duration
	CookieName string
	// Secure marks the cookie Secure (production deployments).
	Secure bool
	// Revocations is optional; without it logout only clears the cookie.
	Revocations RevocationList
	Now         func() time.Time
}

// Gate authenticates the single moderator and issues/validates the session cookie.
type Gate struct {
	opts Options
}

func NewGate(o Options) *Gate {
	if o.Mode == "" {
		o.Mode = ModeSigned
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Gate{opts: o}
}

func (g *Gate) Mode() Mode         { return g.opts.Mode }
func (g *Gate) CookieName() string { return g.opts.CookieName }

// VerifyCredential reports whether submitted equals the configured secret.
// An unconfigured secret matches nothing.
func (g *Gate) VerifyCredential(submitted string) bool {
	if g.opts.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(g.opts.Password)) == 1
}

// IssueToken creates a fresh session token in the configured format.
func (g *Gate) IssueToken() (string, error) {
	if g.opts.Mode == ModeOpaque {
		return tokens.GenerateOpaqueToken()
	}
	tok, _, err := tokens.GenerateSessionToken(g.opts.Secret, g.opts.TTL, g.opts.Now())
	return tok, err
}

// AttachSession sets the session cookie on the response.
func (g *Gate) AttachSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.opts.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.opts.TTL / time.Second),
		HttpOnly: true,
		Secure:   g.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSession instructs the client to drop the session cookie.
func (g *Gate) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SessionToken returns the raw cookie value, or "" when absent.
func (g *Gate) SessionToken(r *http.Request) string {
	c, err := r.Cookie(g.opts.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Authenticate validates a raw token. It returns ErrUnauthenticated (possibly
// wrapped) for any credential problem, and other errors when the revocation
// list cannot be consulted.
func (g *Gate) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}
	if g.opts.Mode == ModeOpaque {
		return nil
	}
	claims, err := tokens.ParseSessionToken(g.opts.Secret, token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if g.opts.Revocations == nil {
		return nil
	}
	revoked, err := g.opts.Revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return fmt.Errorf("%w: session revoked", ErrUnauthenticated)
	}
	return nil
}

// IsAuthenticated checks the session cookie carried by r.
func (g *Gate) IsAuthenticated(r *http.Request) (bool, error) {
	err := g.Authenticate(r.Context(), g.SessionToken(r))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthenticated):
		return false, nil
	default:
		return false, err
	}
}

// Revoke invalidates a signed token for the rest of its lifetime. Tokens that
// are already invalid, opaque tokens, and gates without a revocation list are
// no-ops.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	if token == "" || g.opts.Mode == ModeOpaque || g.opts.Revocations == nil {
		return nil
	}
	claims, err := tokens.ParseSessionToken(g.opts.Secret, token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(g.opts.Now())
	return g.opts.Revocations.Revoke(ctx, claims.ID, ttl)
}
