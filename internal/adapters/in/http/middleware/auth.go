// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	authdom "storefront/internal/domain/auth"
	userdom "storefront/internal/domain/user"
)

// FirebaseAuthClient is an alias so wiring code can take
// *middleware.FirebaseAuthClient without importing the SDK.
type FirebaseAuthClient = fbauth.Client

// TokenVerifier abstracts bearer-token verification. Satisfied by the
// Firebase client; tests plug in a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (uid string, err error)
}

// FirebaseVerifier adapts the Firebase client to TokenVerifier.
type FirebaseVerifier struct {
	Client *FirebaseAuthClient
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if v == nil || v.Client == nil {
		return "", errors.New("auth: firebase client is nil")
	}
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return "", errors.New("auth: empty uid in token")
	}
	return uid, nil
}

// context key avoids string collisions (SA1029)
type ctxKey struct{ name string }

var ctxKeyPrincipal = ctxKey{name: "principal"}

// PrincipalFrom returns the request principal; anonymous when the
// middleware never ran or the request carried no token.
func PrincipalFrom(ctx context.Context) authdom.Principal {
	if p, ok := ctx.Value(ctxKeyPrincipal).(authdom.Principal); ok {
		return p
	}
	return authdom.Anonymous
}

// AuthMiddleware resolves
//
//   - Authorization: Bearer <ID_TOKEN>
//
// into a Principal with roles looked up from the user store. Requests
// without a token proceed as anonymous; each operation decides whether
// anonymous is acceptable. A token that is present but invalid is
// rejected outright.
type AuthMiddleware struct {
	Verifier TokenVerifier
	Users    userdom.Repository
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil || m.Users == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, withPrincipal(r, authdom.Anonymous))
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: malformed authorization header", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		uid, err := m.Verifier.Verify(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		principal := authdom.Principal{ID: uid}

		// Roles live on the stored account. A verified uid without a
		// stored account is still a principal (registration flow).
		usr, err := m.Users.GetByID(r.Context(), uid)
		switch {
		case err == nil:
			principal.IsAdmin = usr.IsAdmin
			principal.IsStaff = usr.IsStaff
		case errors.Is(err, userdom.ErrNotFound):
			// keep bare principal
		default:
			log.Printf("[auth_mw] path=%s uid=%s role lookup failed: %v", r.URL.Path, uid, err)
			http.Error(w, "auth lookup failed", http.StatusServiceUnavailable)
			return
		}

		next.ServeHTTP(w, withPrincipal(r, principal))
	})
}

// ContextWithPrincipal returns a copy of ctx carrying the principal.
// Handlers exercised without the middleware get theirs through it.
func ContextWithPrincipal(ctx context.Context, p authdom.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

func withPrincipal(r *http.Request, p authdom.Principal) *http.Request {
	return r.WithContext(ContextWithPrincipal(r.Context(), p))
}
