package validator

import (
	"testing"

	"github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator()

	ok := repository.RegisterInput{Email: "a@b.com", Password: "password123", FullName: "A B"}
	assert.NoError(t, v.ValidateRegister(ok))

	//必須欠け
	in := ok
	in.Email = ""
	assert.ErrorIs(t, v.ValidateRegister(in), usecase.ErrInvalidInput)

	in = ok
	in.FullName = "   "
	assert.ErrorIs(t, v.ValidateRegister(in), usecase.ErrInvalidInput)

	//email形式
	in = ok
	in.Email = "not-an-email"
	assert.ErrorIs(t, v.ValidateRegister(in), usecase.ErrInvalidInput)

	//パスワード8文字未満
	in = ok
	in.Password = "short"
	assert.ErrorIs(t, v.ValidateRegister(in), usecase.ErrInvalidInput)

	//前後の空白は許容
	in = ok
	in.Email = "  a@b.com  "
	assert.NoError(t, v.ValidateRegister(in))
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("a@b.com", "whatever"))
	assert.ErrorIs(t, v.ValidateLogin("", "x"), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin("a@b.com", ""), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin("nope", "x"), usecase.ErrInvalidInput)
}
