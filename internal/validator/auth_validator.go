package validator

import (
	"regexp"
	"strings"

	"github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(in repository.RegisterInput) error {
	email := strings.TrimSpace(in.Email)

	// 必須チェック
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return usecase.ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrInvalidInput
	}

	// パスワード最低文字数（MVP: 8）
	if len(in.Password) < 8 {
		return usecase.ErrInvalidInput
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(email, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrInvalidInput
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
