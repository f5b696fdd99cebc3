// internal/adapters/in/http/middleware/auth_test.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	userdom "storefront/internal/domain/user"
)

type stubVerifier struct {
	uid string
	err error
}

func (v stubVerifier) Verify(context.Context, string) (string, error) {
	return v.uid, v.err
}

type stubUserRepo struct {
	users map[string]userdom.User
}

func (r stubUserRepo) GetByID(_ context.Context, id string) (userdom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r stubUserRepo) GetByEmail(context.Context, string) (userdom.User, error) {
	return userdom.User{}, userdom.ErrNotFound
}

func (r stubUserRepo) Create(_ context.Context, u userdom.User) (userdom.User, error) {
	return u, nil
}

func (r stubUserRepo) Mutate(context.Context, string, func(*userdom.User) error) (userdom.User, error) {
	return userdom.User{}, userdom.ErrNotFound
}

func staffUser(id string) userdom.User {
	bd := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	u, _ := userdom.New(id, "Staff Member", id+"@example.com", "", "hash", &bd, "", time.Now())
	u.IsStaff = true
	return u
}

func capturePrincipal(dst *authdom.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestNoHeaderPassesAnonymous(t *testing.T) {
	var got authdom.Principal
	mw := &AuthMiddleware{Verifier: stubVerifier{}, Users: stubUserRepo{}}

	rec := httptest.NewRecorder()
	mw.Handler(capturePrincipal(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.IsAnonymous())
}

func TestInvalidTokenRejected(t *testing.T) {
	mw := &AuthMiddleware{
		Verifier: stubVerifier{err: errors.New("expired")},
		Users:    stubUserRepo{},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	mw.Handler(capturePrincipal(&authdom.Principal{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedHeaderRejected(t *testing.T) {
	mw := &AuthMiddleware{Verifier: stubVerifier{uid: "u-1"}, Users: stubUserRepo{}}

	for _, header := range []string{"Token abc", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		mw.Handler(capturePrincipal(&authdom.Principal{})).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestRolesLoadedFromStore(t *testing.T) {
	var got authdom.Principal
	mw := &AuthMiddleware{
		Verifier: stubVerifier{uid: "staff-1"},
		Users:    stubUserRepo{users: map[string]userdom.User{"staff-1": staffUser("staff-1")}},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	mw.Handler(capturePrincipal(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff-1", got.ID)
	assert.True(t, got.IsStaff)
	assert.False(t, got.IsAdmin)
}

func TestVerifiedUIDWithoutAccount(t *testing.T) {
	// registration flow: the token is valid but no profile exists yet
	var got authdom.Principal
	mw := &AuthMiddleware{
		Verifier: stubVerifier{uid: "new-user"},
		Users:    stubUserRepo{},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	mw.Handler(capturePrincipal(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new-user", got.ID)
	assert.False(t, got.IsPrivileged())
}
