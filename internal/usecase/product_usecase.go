package usecase

import (
	"context"
	"strings"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
)

type ProductUsecase struct {
	products repo.ProductRepository
	store    session.Store
}

// DI
func NewProductUsecase(products repo.ProductRepository, store session.Store) *ProductUsecase {
	return &ProductUsecase{products: products, store: store}
}

// Browse lists products for customers. 認証は不要。
func (u *ProductUsecase) Browse(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	return u.products.List(ctx, q)
}

func (u *ProductUsecase) Categories(ctx context.Context) ([]string, error) {
	return u.products.Categories(ctx)
}

func (u *ProductUsecase) Detail(ctx context.Context, id string) (model.Product, error) {
	return u.products.FindByID(ctx, id)
}

func (u *ProductUsecase) requireStaff() error {
	claims, ok := session.PeekClaims(u.store.AccessToken())
	if !ok || !model.Role(claims.Role).Staff() {
		return ErrStaffOnly
	}
	return nil
}

// ListAll is the staff-side full listing (availableも含む全件)。
func (u *ProductUsecase) ListAll(ctx context.Context, page int, limit int) ([]model.Product, error) {
	if err := u.requireStaff(); err != nil {
		return nil, err
	}
	return u.products.ListAll(ctx, page, limit)
}

func (u *ProductUsecase) Create(ctx context.Context, in repo.ProductInput) (model.Product, error) {
	if err := u.requireStaff(); err != nil {
		return model.Product{}, err
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}
	return u.products.Create(ctx, in)
}

func (u *ProductUsecase) Update(ctx context.Context, id string, in repo.ProductInput) (model.Product, error) {
	if err := u.requireStaff(); err != nil {
		return model.Product{}, err
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}
	return u.products.Update(ctx, id, in)
}

func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	if err := u.requireStaff(); err != nil {
		return err
	}
	return u.products.Delete(ctx, id)
}

func validateProductInput(in repo.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if in.Price < 0 {
		return ErrInvalidInput
	}
	return nil
}
