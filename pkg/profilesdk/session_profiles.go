package profilesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// ListProfiles returns the account's active profiles, most recently
// accessed first.
func (s *Session) ListProfiles(ctx context.Context) ([]Profile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/profiles", nil, nil)
	if err != nil {
		return nil, err
	}

	var out ProfileListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// CreateProfile creates a new profile.
func (s *Session) CreateProfile(ctx context.Context, req CreateProfileRequest) (*Profile, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/profiles", bytes.NewReader(payload), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches a profile's mutable fields.
func (s *Session) UpdateProfile(ctx context.Context, profileID string, req UpdateProfileRequest) (*Profile, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/profiles/"+profileID, bytes.NewReader(payload), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProfile soft-deletes a profile.
func (s *Session) DeleteProfile(ctx context.Context, profileID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/profiles/"+profileID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// SwitchProfile makes the profile the account's active one and returns it.
// Safe to call repeatedly.
func (s *Session) SwitchProfile(ctx context.Context, profileID string) (*Profile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/profiles/"+profileID+"/switch", nil, nil)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments returns the documents scoped to one of the caller's
// profiles.
func (s *Session) ListDocuments(ctx context.Context, profileID string) ([]Document, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/documents?profile_id="+profileID, nil, nil)
	if err != nil {
		return nil, err
	}

	var out DocumentListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// CreateDocument creates a document under one of the caller's profiles.
func (s *Session) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/documents", bytes.NewReader(payload), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out Document
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunBackfill triggers the compatibility backfill. Admin only.
func (s *Session) RunBackfill(ctx context.Context) (*BackfillResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/backfill", nil, nil)
	if err != nil {
		return nil, err
	}

	var out BackfillResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
