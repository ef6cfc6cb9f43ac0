package profilesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const localStateFile = "profiles-state.json"

// localState is the on-disk shape of the device-local session state. The
// installation id identifies this device in logs and support bundles; the
// pointer map survives process restarts so the device keeps acting as the
// same profile.
type localState struct {
	InstallationID string `json:"installation_id"`

	// ActiveProfiles maps account id to the locally chosen profile id.
	ActiveProfiles map[string]string `json:"active_profiles"`
}

// LocalStateStore persists the device-local pointer under a directory,
// typically the user config dir. Safe for concurrent use within one
// process; cross-process writers race benignly (last writer wins, same as
// the server pointer).
type LocalStateStore struct {
	mu   sync.Mutex
	path string
	st   localState
}

// OpenLocalState loads (or initializes) the local state under dir. A
// fresh or corrupt file is replaced with an empty state carrying a new
// installation id.
func OpenLocalState(dir string) (*LocalStateStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("profilesdk: creating state dir: %w", err)
	}

	s := &LocalStateStore{path: filepath.Join(dir, localStateFile)}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run on this device.
	case err != nil:
		return nil, fmt.Errorf("profilesdk: reading local state: %w", err)
	default:
		if jsonErr := json.Unmarshal(data, &s.st); jsonErr != nil {
			s.st = localState{}
		}
	}

	if s.st.InstallationID == "" {
		s.st.InstallationID = uuid.NewString()
	}
	if s.st.ActiveProfiles == nil {
		s.st.ActiveProfiles = map[string]string{}
	}

	if err := s.flushLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// InstallationID returns this device's stable installation id.
func (s *LocalStateStore) InstallationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.InstallationID
}

// ActiveProfile returns the locally chosen profile id for the account, or
// "" when none is recorded.
func (s *LocalStateStore) ActiveProfile(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ActiveProfiles[accountID]
}

// SetActiveProfile records the local pointer and flushes to disk.
func (s *LocalStateStore) SetActiveProfile(accountID, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profileID == "" {
		delete(s.st.ActiveProfiles, accountID)
	} else {
		s.st.ActiveProfiles[accountID] = profileID
	}
	return s.flushLocked()
}

// flushLocked writes the state atomically: temp file then rename.
func (s *LocalStateStore) flushLocked() error {
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("profilesdk: writing local state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("profilesdk: replacing local state: %w", err)
	}
	return nil
}
