package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewFileStore(path, nil)
	s.SetAccessToken("tok")
	s.SetRefreshToken("refresh")
	s.SetUserID("u1")
	s.SetLoggedIn(true)

	//別インスタンスで読み直しても同じ状態になる
	s2 := NewFileStore(path, nil)
	assert.Equal(t, "tok", s2.AccessToken())
	assert.Equal(t, "refresh", s2.RefreshToken())
	assert.Equal(t, "u1", s2.UserID())
	assert.True(t, s2.LoggedIn())
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewFileStore(path, nil)
	s.SetAccessToken("tok")
	s.SetLoggedIn(true)

	s.Clear()
	s.Clear() //2回目も安全

	assert.Empty(t, s.AccessToken())
	assert.False(t, s.LoggedIn())

	//UserIDはClearでは消さない
	s.SetUserID("u1")
	s.Clear()
	assert.Equal(t, "u1", s.UserID())
}

func TestFileStore_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := NewFileStore(path, nil)
	assert.Empty(t, s.AccessToken())
	assert.False(t, s.LoggedIn())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	s.SetAccessToken("tok")
	s.SetLoggedIn(true)
	assert.Equal(t, "tok", s.AccessToken())

	s.Clear()
	assert.Empty(t, s.AccessToken())
	assert.False(t, s.LoggedIn())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test_secret"))
	assert.NoError(t, err)
	return signed
}

func TestPeekClaims(t *testing.T) {
	now := time.Now()
	token := signedToken(t, jwt.MapClaims{
		"sub":  "u1",
		"role": "staff",
		"exp":  now.Add(time.Hour).Unix(),
	})

	claims, ok := PeekClaims(token)
	assert.True(t, ok)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.False(t, claims.Expired(now))
	assert.True(t, claims.Expired(now.Add(2*time.Hour)))
}

func TestPeekClaims_Invalid(t *testing.T) {
	_, ok := PeekClaims("")
	assert.False(t, ok)

	_, ok = PeekClaims("not.a.jwt")
	assert.False(t, ok)
}

func TestPeekClaims_NoExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u1", "role": "customer"})

	claims, ok := PeekClaims(token)
	assert.True(t, ok)
	//exp claimが無ければ期限切れ扱いにしない
	assert.False(t, claims.Expired(time.Now()))
}
