package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/pkg/idx"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProductService manages a user's product catalogue. All reads and writes
// are scoped to the owner; another user's product reads as absent rather
// than forbidden, so product IDs leak nothing.
type ProductService struct {
	Store store.Store
}

type ProductParams struct {
	Name        string
	Description *string
	Features    *string
	Price       float64
}

func (s *ProductService) Create(ctx context.Context, ownerID string, params ProductParams) (domain.Product, error) {
	if err := validateProduct(params); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          idx.New().String(),
		UserID:      ownerID,
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Features:    params.Features,
		Price:       params.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Products().Create(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Get(ctx context.Context, ownerID, productID string) (domain.Product, error) {
	return s.owned(ctx, ownerID, productID)
}

func (s *ProductService) List(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, error) {
	offset, limit = clampPage(offset, limit)

	products, err := s.Store.Products().ListByUser(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, ownerID, productID string, params ProductParams) (domain.Product, error) {
	if err := validateProduct(params); err != nil {
		return domain.Product{}, err
	}

	product, err := s.owned(ctx, ownerID, productID)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = strings.TrimSpace(params.Name)
	product.Description = params.Description
	product.Features = params.Features
	product.Price = params.Price
	product.UpdatedAt = time.Now().UTC()

	if err := s.Store.Products().Update(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, ownerID, productID string) error {
	if _, err := s.owned(ctx, ownerID, productID); err != nil {
		return err
	}

	if err := s.Store.Products().Delete(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *ProductService) owned(ctx context.Context, ownerID, productID string) (domain.Product, error) {
	product, err := s.Store.Products().GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}

	if product.UserID != ownerID {
		return domain.Product{}, ErrNotFound
	}

	return product, nil
}

func validateProduct(params ProductParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if params.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	return nil
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}
