package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/linagora/Argus-du-Libre/internal/platform/errors"
)

const (
	sessionCookieName = "argus_admin_session"
	sessionTTL        = 12 * time.Hour
	sessionIssuer     = "argus-du-libre"
)

// sessionManager issues and verifies editor session cookies.
type sessionManager struct {
	secret       []byte
	editorID     string
	editorSecret string
	now          func() time.Time
}

func newSessionManager(secret, editorID, editorSecret string) *sessionManager {
	return &sessionManager{
		secret:       []byte(secret),
		editorID:     editorID,
		editorSecret: editorSecret,
		now:          time.Now,
	}
}

// authenticate checks submitted editor credentials in constant time.
func (m *sessionManager) authenticate(editorID, secret string) error {
	if m.editorID == "" || m.editorSecret == "" {
		return apperrors.EK(apperrors.KindUnavailable, "admin.login.error", "editor sign-in is not configured")
	}
	idMatch := subtle.ConstantTimeCompare([]byte(editorID), []byte(m.editorID))
	secretMatch := subtle.ConstantTimeCompare([]byte(secret), []byte(m.editorSecret))
	if idMatch&secretMatch != 1 {
		return apperrors.EK(apperrors.KindUnauthorized, "admin.login.error", "editor credentials are invalid")
	}
	return nil
}

// issue signs a session token for the given editor.
func (m *sessionManager) issue(editorID string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret is not configured")
	}
	now := m.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   editorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// verify checks a session token and returns the editor id.
func (m *sessionManager) verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.E(apperrors.KindUnauthorized, "session token is required")
	}
	if len(m.secret) == 0 {
		return "", errors.New("session secret is not configured")
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(func() time.Time { return m.now().UTC() }),
	)
	if err != nil {
		return "", apperrors.E(apperrors.KindUnauthorized, "session token is invalid")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", apperrors.E(apperrors.KindUnauthorized, "session subject is required")
	}
	return claims.Subject, nil
}

// setCookie installs the session cookie on the response.
func (m *sessionManager) setCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCookie removes the session cookie from the response.
func (m *sessionManager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// authenticated returns the signed-in editor id, or an error when absent.
func (m *sessionManager) authenticated(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", apperrors.E(apperrors.KindUnauthorized, "editor session is required")
	}
	return m.verify(cookie.Value)
}
