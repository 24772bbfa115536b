package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bryantlimm/setaside-go/internal/session"
	"github.com/stretchr/testify/assert"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *session.MemoryStore, func()) {
	t.Helper()

	srv := httptest.NewServer(handler)
	store := session.NewMemoryStore()
	gw := New(srv.URL, store, nil)
	return gw, store, srv.Close
}

func TestGateway_Success(t *testing.T) {
	gw, _, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"p1"}`))
	})
	defer done()

	data, err := gw.Do(context.Background(), http.MethodGet, "/products/p1", nil, false)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1"}`, string(data))
}

func TestGateway_BearerAttachedOnlyWhenRequired(t *testing.T) {
	var got []string
	gw, store, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})
	defer done()

	store.SetAccessToken("tok")

	_, _ = gw.Do(context.Background(), http.MethodGet, "/orders", nil, true)
	_, _ = gw.Do(context.Background(), http.MethodGet, "/products", nil, false)

	assert.Equal(t, []string{"Bearer tok", ""}, got)
}

func TestGateway_UnauthorizedClearsSession(t *testing.T) {
	gw, store, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer done()

	store.SetAccessToken("stale")
	store.SetLoggedIn(true)

	_, err := gw.Do(context.Background(), http.MethodGet, "/orders", nil, true)
	assert.True(t, IsKind(err, KindUnauthorized))

	//401でローカルセッションは破棄される
	assert.Empty(t, store.AccessToken())
	assert.False(t, store.LoggedIn())
}

func TestGateway_NotFound(t *testing.T) {
	gw, _, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer done()

	_, err := gw.Do(context.Background(), http.MethodGet, "/orders/missing", nil, true)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGateway_ServerErrorWithMessage(t *testing.T) {
	gw, _, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"database down"}`))
	})
	defer done()

	_, err := gw.Do(context.Background(), http.MethodGet, "/orders", nil, true)
	ae, ok := AsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, KindHTTP, ae.Kind)
	assert.Contains(t, ae.Error(), "Server error: database down")
}

func TestGateway_ServerErrorWithoutMessage(t *testing.T) {
	gw, _, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer done()

	_, err := gw.Do(context.Background(), http.MethodGet, "/orders", nil, true)
	assert.True(t, IsKind(err, KindServer))
}

func TestGateway_ClientErrorMessageFallback(t *testing.T) {
	gw, _, done := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`not json`))
	})
	defer done()

	_, err := gw.Do(context.Background(), http.MethodGet, "/orders", nil, true)
	ae, ok := AsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, KindHTTP, ae.Kind)
	assert.Contains(t, ae.Error(), "Request failed")
}

func TestGateway_NetworkError(t *testing.T) {
	store := session.NewMemoryStore()
	//閉じたサーバーへの接続は失敗する
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	gw := New(srv.URL, store, nil)
	srv.Close()

	_, err := gw.Do(context.Background(), http.MethodGet, "/products", nil, false)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestGateway_InvalidURL(t *testing.T) {
	store := session.NewMemoryStore()
	gw := New("://not-a-url", store, nil)

	_, err := gw.Do(context.Background(), http.MethodGet, "/products", nil, false)
	assert.True(t, IsKind(err, KindInvalidRequest))
}

func TestDecodingError(t *testing.T) {
	err := DecodingError(assert.AnError)
	assert.True(t, IsKind(err, KindDecoding))

	//HTTPエラーとは別種
	assert.False(t, IsKind(err, KindHTTP))
}
