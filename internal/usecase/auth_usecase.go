package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
)

// AuthValidator validates credentials before they leave the client.
type AuthValidator interface {
	ValidateRegister(in repo.RegisterInput) error
	ValidateLogin(email, password string) error
}

type AuthUsecase struct {
	auth  repo.AuthRepository
	store session.Store
	av    AuthValidator
	log   *slog.Logger
}

// DI
func NewAuthUsecase(auth repo.AuthRepository, store session.Store, av AuthValidator, log *slog.Logger) *AuthUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &AuthUsecase{auth: auth, store: store, av: av, log: log}
}

func (u *AuthUsecase) Register(ctx context.Context, in repo.RegisterInput) (model.User, error) {
	if err := u.av.ValidateRegister(in); err != nil {
		return model.User{}, err
	}
	res, err := u.auth.Register(ctx, in)
	if err != nil {
		return model.User{}, err
	}
	return u.establish(ctx, res)
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := u.av.ValidateLogin(email, password); err != nil {
		return model.User{}, err
	}
	res, err := u.auth.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	return u.establish(ctx, res)
}

// establish はトークンを保存してログイン状態を立てる。
// 応答にユーザーが含まれなければ /auth/me で補完する。
func (u *AuthUsecase) establish(ctx context.Context, res repo.AuthResult) (model.User, error) {
	u.store.SetAccessToken(res.AccessToken)
	if res.RefreshToken != "" {
		u.store.SetRefreshToken(res.RefreshToken)
	}
	u.store.SetLoggedIn(true)

	user := model.User{}
	if res.User != nil {
		user = *res.User
	} else if fetched, err := u.auth.CurrentUser(ctx); err == nil {
		user = fetched
	} else {
		u.log.Debug("auth response had no user and /auth/me failed", "error", err)
	}
	if user.ID != "" {
		u.store.SetUserID(user.ID)
	}
	return user, nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context) (model.User, error) {
	return u.auth.CurrentUser(ctx)
}

// Logout clears local state only. サーバー側セッション破棄のAPIはない。
func (u *AuthUsecase) Logout() {
	u.store.Clear()
}

// IsLoggedIn reports whether a usable session exists locally.
// フラグに加えてトークンの期限もpeekする（署名検証はしない）。
func (u *AuthUsecase) IsLoggedIn() bool {
	if !u.store.LoggedIn() {
		return false
	}
	claims, ok := session.PeekClaims(u.store.AccessToken())
	if !ok {
		return false
	}
	return !claims.Expired(time.Now())
}

// RestoreSession revalidates a persisted session at startup.
// 期限切れや401はセッションを破棄してfalseを返す。
func (u *AuthUsecase) RestoreSession(ctx context.Context) (model.User, bool) {
	if !u.IsLoggedIn() {
		u.store.Clear()
		return model.User{}, false
	}
	user, err := u.auth.CurrentUser(ctx)
	if err != nil {
		u.log.Debug("session restore failed", "error", err)
		u.store.Clear()
		return model.User{}, false
	}
	u.store.SetUserID(user.ID)
	return user, true
}
