package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/metropower/dashboard/internal/domain"
	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Authenticator verifies a username and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// BasicAuth checks HTTP Basic credentials and stores the operator in the request locals.
// Verified credentials are remembered for a short time so bcrypt runs once per TTL.
type BasicAuth struct {
	authenticator Authenticator
	realm         string
	cache         *expirable.LRU[string, *domain.User]
}

// NewBasicAuth builds the middleware. A zero cacheSize or ttl disables caching.
func NewBasicAuth(authenticator Authenticator, realm string, cacheSize int, ttl time.Duration) *BasicAuth {
	m := &BasicAuth{authenticator: authenticator, realm: realm}
	if cacheSize > 0 && ttl > 0 {
		m.cache = expirable.NewLRU[string, *domain.User](cacheSize, nil, ttl)
	}
	return m
}

// Handle enforces authentication for protected routes.
func (m *BasicAuth) Handle(c *fiber.Ctx) error {
	username, password, ok := parseBasic(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return m.challenge(c, "missing or malformed basic credentials")
	}

	key := credentialKey(username, password)
	if m.cache != nil {
		if user, hit := m.cache.Get(key); hit {
			c.Locals(principalKey, user)
			return c.Next()
		}
	}

	user, err := m.authenticator.Authenticate(c.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return m.challenge(c, "invalid credentials")
		}
		return apperrors.MapError(err)
	}

	if m.cache != nil {
		m.cache.Add(key, user)
	}
	c.Locals(principalKey, user)
	return c.Next()
}

func (m *BasicAuth) challenge(c *fiber.Ctx, message string) error {
	realm := m.realm
	if realm == "" {
		realm = "Restricted"
	}
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+realm+`"`)
	return apperrors.NewUnauthorized(message)
}

// PrincipalFromContext returns the authenticated operator.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(principalKey).(*domain.User)
	return user, ok && user != nil
}

func parseBasic(header string) (string, string, bool) {
	const prefix = "basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", false
	}
	return username, password, true
}

func credentialKey(username, password string) string {
	sum := sha256.Sum256([]byte(username + "\x00" + password))
	return hex.EncodeToString(sum[:])
}
