package service

import (
	"context"
	"errors"
	"strings"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/idx"
)

var ErrDocumentInvalid = errors.New("document_invalid")

// DocumentService is the thin CRUD needed to exercise the ownership gate.
// Every operation resolves the gate before touching the row.
type DocumentService struct {
	Store     store.Store
	Ownership *OwnershipService
}

// ListForProfile returns the profile's documents, newest first. The caller
// must own the profile.
func (s *DocumentService) ListForProfile(ctx context.Context, accountID, profileID string) ([]domain.Document, error) {
	if err := s.Ownership.AuthorizeResource(ctx, accountID, domain.ProfileRef{ProfileID: profileID}); err != nil {
		return nil, err
	}
	return s.Store.Documents().ListDocumentsByProfile(ctx, profileID)
}

// Create inserts a document scoped to one of the caller's profiles.
func (s *DocumentService) Create(ctx context.Context, accountID, profileID, title, kind string) (domain.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Document{}, ErrDocumentInvalid
	}
	if kind == "" {
		kind = "note"
	}
	if err := s.Ownership.AuthorizeResource(ctx, accountID, domain.ProfileRef{ProfileID: profileID}); err != nil {
		return domain.Document{}, err
	}

	d := domain.Document{
		ID:        idx.New().String(),
		AccountID: accountID,
		ProfileID: &profileID,
		Title:     title,
		Kind:      kind,
	}
	if err := s.Store.Documents().CreateDocument(ctx, d); err != nil {
		return domain.Document{}, err
	}
	return s.Store.Documents().GetDocumentByID(ctx, d.ID)
}

// Get returns a document the caller may access. Pre-backfill rows still
// referencing only an account resolve through the legacy branch of the
// gate.
func (s *DocumentService) Get(ctx context.Context, accountID, documentID string) (domain.Document, error) {
	d, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrOwnershipDenied
		}
		return domain.Document{}, err
	}
	if err := s.Ownership.AuthorizeResource(ctx, accountID, d.Ref()); err != nil {
		return domain.Document{}, err
	}
	return d, nil
}

// Delete removes a document after the gate resolves.
func (s *DocumentService) Delete(ctx context.Context, accountID, documentID string) error {
	if _, err := s.Get(ctx, accountID, documentID); err != nil {
		return err
	}
	return s.Store.Documents().DeleteDocument(ctx, documentID)
}
