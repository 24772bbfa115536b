package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable key-value state that survives restarts:
// トークンとログインフラグ。起動時に読んで再ログインを省く。
type Store interface {
	AccessToken() string
	SetAccessToken(token string)
	RefreshToken() string
	SetRefreshToken(token string)
	UserID() string
	SetUserID(id string)
	LoggedIn() bool
	SetLoggedIn(v bool)

	// Clear drops the tokens and the logged-in flag.
	// 401を受けた時とログアウト時に呼ぶ。冪等。
	Clear()
}

type sessionData struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	IsLoggedIn   bool   `json:"is_logged_in,omitempty"`
}

// FileStore persists the session as a small JSON file.
// 書き込み失敗は致命ではないのでログだけ出して続行する。
type FileStore struct {
	mu   sync.Mutex
	path string
	data sessionData
	log  *slog.Logger
}

func NewFileStore(path string, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.Default()
	}
	s := &FileStore{path: path, log: log}
	s.load()
	return s
}

func (s *FileStore) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var d sessionData
	if err := json.Unmarshal(b, &d); err != nil {
		s.log.Warn("session file is corrupt, starting fresh", "path", s.path)
		return
	}
	s.data = d
}

func (s *FileStore) save() {
	b, err := json.Marshal(s.data)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Warn("failed to create session dir", "error", err)
		return
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		s.log.Warn("failed to write session file", "error", err)
	}
}

func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

func (s *FileStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = token
	s.save()
}

func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.RefreshToken
}

func (s *FileStore) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RefreshToken = token
	s.save()
}

func (s *FileStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UserID
}

func (s *FileStore) SetUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.UserID = id
	s.save()
}

func (s *FileStore) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.IsLoggedIn
}

func (s *FileStore) SetLoggedIn(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.IsLoggedIn = v
	s.save()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.AccessToken == "" && s.data.RefreshToken == "" && !s.data.IsLoggedIn {
		return
	}
	s.data.AccessToken = ""
	s.data.RefreshToken = ""
	s.data.IsLoggedIn = false
	s.save()
}

// MemoryStore is an in-memory Store. テスト用。
type MemoryStore struct {
	mu   sync.Mutex
	data sessionData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

func (s *MemoryStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = token
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.RefreshToken
}

func (s *MemoryStore) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RefreshToken = token
}

func (s *MemoryStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UserID
}

func (s *MemoryStore) SetUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.UserID = id
}

func (s *MemoryStore) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.IsLoggedIn
}

func (s *MemoryStore) SetLoggedIn(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.IsLoggedIn = v
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = ""
	s.data.RefreshToken = ""
	s.data.IsLoggedIn = false
}
