package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryantlimm/setaside-go/internal/normalize"
	"github.com/bryantlimm/setaside-go/internal/session"
)

// 接続レベルの固定タイムアウト（呼び出しごとの設定は無し）
const (
	requestTimeout  = 30 * time.Second
	resourceTimeout = 60 * time.Second
)

// Gateway issues REST calls against the backend.
// トークンの付与と、HTTPステータス→APIErrorの変換だけを持つ。
// ボディの解釈（normalize）は各repositoryが行う。
type Gateway struct {
	baseURL string
	store   session.Store
	http    *http.Client
	log     *slog.Logger
}

// DI
func New(baseURL string, store session.Store, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http: &http.Client{
			Timeout: resourceTimeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: requestTimeout,
			},
		},
		log: log,
	}
}

// Do sends a request and returns the raw 2xx body.
// requiresAuthの時だけ、保存済みトークンがあればBearerを付ける。
func (g *Gateway) Do(ctx context.Context, method, endpoint string, body any, requiresAuth bool) ([]byte, error) {
	req, err := g.newRequest(ctx, method, endpoint, body, requiresAuth)
	if err != nil {
		return nil, err
	}

	g.log.Debug("api request", "method", method, "endpoint", endpoint)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindInvalidResponse, Err: err}
	}

	g.log.Debug("api response", "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(data))

	return g.mapStatus(resp.StatusCode, data)
}

// DoNoContent は応答ボディを使わない操作（DELETEなど）用。
func (g *Gateway) DoNoContent(ctx context.Context, method, endpoint string, body any, requiresAuth bool) error {
	_, err := g.Do(ctx, method, endpoint, body, requiresAuth)
	return err
}

func (g *Gateway) newRequest(ctx context.Context, method, endpoint string, body any, requiresAuth bool) (*http.Request, error) {
	if _, err := url.ParseRequestURI(g.baseURL + endpoint); err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindInvalidRequest, Err: err}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if requiresAuth {
		// 毎回読む（ログイン直後の古いトークンを掴まないため）
		if token := g.store.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (g *Gateway) mapStatus(status int, data []byte) ([]byte, error) {
	switch {
	case status >= 200 && status <= 299:
		return data, nil

	case status == http.StatusUnauthorized:
		// セッションを破棄して再ログインを強制する
		g.store.Clear()
		return nil, &APIError{Kind: KindUnauthorized, Status: status}

	case status == http.StatusNotFound:
		return nil, &APIError{Kind: KindNotFound, Status: status}

	case status >= 500 && status <= 599:
		if msg := normalize.ErrorMessage(data); msg != "" {
			return nil, &APIError{Kind: KindHTTP, Status: status, Message: "Server error: " + msg}
		}
		return nil, &APIError{Kind: KindServer, Status: status}

	default:
		msg := normalize.ErrorMessage(data)
		if msg == "" {
			msg = "Request failed"
		}
		return nil, &APIError{Kind: KindHTTP, Status: status, Message: msg}
	}
}

// DecodingError wraps a normalize failure on a 2xx body.
// HTTPエラーとは別の種類として呼び出し側に返す。
func DecodingError(err error) error {
	return &APIError{Kind: KindDecoding, Err: err}
}
