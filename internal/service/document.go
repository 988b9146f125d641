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

// DocumentService manages a user's generated documents, owner-scoped the
// same way products are.
type DocumentService struct {
	Store store.Store
}

type DocumentParams struct {
	Type    string
	Content string
}

func (s *DocumentService) Create(ctx context.Context, ownerID string, params DocumentParams) (domain.Document, error) {
	if err := validateDocument(params); err != nil {
		return domain.Document{}, err
	}

	document := domain.Document{
		ID:        idx.New().String(),
		UserID:    ownerID,
		Type:      params.Type,
		Content:   params.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.Documents().Create(ctx, document); err != nil {
		return domain.Document{}, fmt.Errorf("create document: %w", err)
	}

	return document, nil
}

func (s *DocumentService) Get(ctx context.Context, ownerID, documentID string) (domain.Document, error) {
	return s.owned(ctx, ownerID, documentID)
}

func (s *DocumentService) List(ctx context.Context, ownerID string, offset, limit int) ([]domain.Document, error) {
	offset, limit = clampPage(offset, limit)

	documents, err := s.Store.Documents().ListByUser(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

func (s *DocumentService) Update(ctx context.Context, ownerID, documentID string, params DocumentParams) (domain.Document, error) {
	if err := validateDocument(params); err != nil {
		return domain.Document{}, err
	}

	document, err := s.owned(ctx, ownerID, documentID)
	if err != nil {
		return domain.Document{}, err
	}

	document.Type = params.Type
	document.Content = params.Content

	if err := s.Store.Documents().Update(ctx, document); err != nil {
		return domain.Document{}, fmt.Errorf("update document: %w", err)
	}

	return document, nil
}

func (s *DocumentService) Delete(ctx context.Context, ownerID, documentID string) error {
	if _, err := s.owned(ctx, ownerID, documentID); err != nil {
		return err
	}

	if err := s.Store.Documents().Delete(ctx, documentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *DocumentService) owned(ctx context.Context, ownerID, documentID string) (domain.Document, error) {
	document, err := s.Store.Documents().GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrNotFound
		}
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}

	if document.UserID != ownerID {
		return domain.Document{}, ErrNotFound
	}

	return document, nil
}

func validateDocument(params DocumentParams) error {
	if !domain.ValidDocumentType(params.Type) {
		return fmt.Errorf("%w: type must be one of %s, %s or %s", ErrInvalidInput,
			domain.DocumentTypeInforme, domain.DocumentTypeReporte, domain.DocumentTypeResumen)
	}
	if strings.TrimSpace(params.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return nil
}
