package usecase

import (
	"context"
	"testing"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// バリデータのスタブ（okAuthValidatorは素通し）
type okAuthValidator struct{}

func (okAuthValidator) ValidateRegister(repo.RegisterInput) error { return nil }
func (okAuthValidator) ValidateLogin(string, string) error        { return nil }

type rejectAuthValidator struct{}

func (rejectAuthValidator) ValidateRegister(repo.RegisterInput) error { return ErrInvalidInput }
func (rejectAuthValidator) ValidateLogin(string, string) error        { return ErrInvalidInput }

func TestAuthUsecase_Login_PersistsSession(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)

	token := tokenWithRole(t, "customer")
	auth.On("Login", mock.Anything, "a@b.com", "password123").Return(repo.AuthResult{
		AccessToken:  token,
		RefreshToken: "refresh",
		User:         &model.User{ID: "u1", Email: "a@b.com"},
	}, nil)

	user, err := uc.Login(context.Background(), "a@b.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.Equal(t, token, store.AccessToken())
	assert.Equal(t, "refresh", store.RefreshToken())
	assert.Equal(t, "u1", store.UserID())
	assert.True(t, store.LoggedIn())
	assert.True(t, uc.IsLoggedIn())
}

func TestAuthUsecase_Login_ValidatorRejects(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	uc := NewAuthUsecase(auth, store, rejectAuthValidator{}, nil)

	_, err := uc.Login(context.Background(), "bad", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	//ネットワークに出ない
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_FetchesUserWhenMissing(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)

	in := repo.RegisterInput{Email: "a@b.com", Password: "password123", FullName: "A B"}

	//登録応答にユーザーが無い → /auth/me で補完
	auth.On("Register", mock.Anything, in).Return(repo.AuthResult{
		AccessToken: tokenWithRole(t, "customer"),
	}, nil)
	auth.On("CurrentUser", mock.Anything).Return(model.User{ID: "u1", Email: "a@b.com"}, nil)

	user, err := uc.Register(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1", store.UserID())
}

func TestAuthUsecase_Logout(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	store.SetAccessToken(tokenWithRole(t, "customer"))
	store.SetLoggedIn(true)

	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)
	uc.Logout()

	assert.Empty(t, store.AccessToken())
	assert.False(t, uc.IsLoggedIn())
}

func TestAuthUsecase_IsLoggedIn_ExpiredToken(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)

	//フラグは立っているがトークンが壊れている
	store.SetAccessToken("garbage")
	store.SetLoggedIn(true)
	assert.False(t, uc.IsLoggedIn())
}

func TestAuthUsecase_RestoreSession(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	store.SetAccessToken(tokenWithRole(t, "customer"))
	store.SetLoggedIn(true)

	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)

	auth.On("CurrentUser", mock.Anything).Return(model.User{ID: "u1"}, nil)

	user, ok := uc.RestoreSession(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthUsecase_RestoreSession_FailureClears(t *testing.T) {
	auth := new(AuthRepoMock)
	store := session.NewMemoryStore()
	store.SetAccessToken(tokenWithRole(t, "customer"))
	store.SetLoggedIn(true)

	uc := NewAuthUsecase(auth, store, okAuthValidator{}, nil)

	auth.On("CurrentUser", mock.Anything).Return(model.User{}, assert.AnError)

	_, ok := uc.RestoreSession(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.AccessToken())
	assert.False(t, store.LoggedIn())
}

func TestAuthUsecase_RestoreSession_NoSession(t *testing.T) {
	auth := new(AuthRepoMock)
	uc := NewAuthUsecase(auth, session.NewMemoryStore(), okAuthValidator{}, nil)

	_, ok := uc.RestoreSession(context.Background())
	assert.False(t, ok)
	auth.AssertNotCalled(t, "CurrentUser", mock.Anything)
}
