package profilesdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// SynchronizerOptions tunes the resolve budget and where local state
// lives.
type SynchronizerOptions struct {
	// StateDir is the directory holding the device-local state file.
	StateDir string

	// AttemptTimeout bounds each backend call. Default 3s.
	AttemptTimeout time.Duration

	// OverallTimeout bounds the whole Resolve, retries included.
	// Default 10s. Resolve never blocks longer than this; it degrades to
	// a transient profile instead.
	OverallTimeout time.Duration

	// MaxRetries is the number of additional attempts after the first
	// failed one. Default 2.
	MaxRetries uint64
}

func (o *SynchronizerOptions) defaults() {
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = 3 * time.Second
	}
	if o.OverallTimeout <= 0 {
		o.OverallTimeout = 10 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 2
	}
}

// Synchronizer keeps a device acting as the right profile. It reconciles
// the local pointer, the server pointer, and the live profile list, and
// never leaves the caller without a profile: when the backend is down it
// hands out a transient placeholder instead of blocking or failing.
type Synchronizer struct {
	session *Session
	state   *LocalStateStore
	opts    SynchronizerOptions
}

// NewSynchronizer opens (or creates) the local state and returns a
// synchronizer bound to the session's account.
func NewSynchronizer(session *Session, opts SynchronizerOptions) (*Synchronizer, error) {
	opts.defaults()

	state, err := OpenLocalState(opts.StateDir)
	if err != nil {
		return nil, err
	}
	return &Synchronizer{session: session, state: state, opts: opts}, nil
}

// State exposes the underlying local state store.
func (s *Synchronizer) State() *LocalStateStore { return s.state }

// Resolve determines the profile this device should act as:
//
//  1. fetch the account and its profiles within the retry budget,
//  2. if the account has no profiles, create a default one,
//  3. select via ResolveActiveProfile, persist the local pointer, and
//     confirm the switch server-side,
//  4. if the backend cannot be reached in time, return a transient
//     profile so the caller can proceed offline.
//
// A later successful Resolve replaces a transient profile silently.
func (s *Synchronizer) Resolve(ctx context.Context) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.OverallTimeout)
	defer cancel()

	me, profiles, err := s.fetch(ctx)
	if err != nil {
		if isUnavailable(err) {
			return s.transientProfile(), nil
		}
		return nil, err
	}

	if len(profiles) == 0 {
		created, err := s.createDefault(ctx, me.Account.DisplayName)
		if err != nil {
			if isUnavailable(err) {
				return s.transientProfile(), nil
			}
			return nil, err
		}
		profiles = []Profile{*created}
	}

	serverPointer := ""
	if me.Account.DefaultProfileID != nil {
		serverPointer = *me.Account.DefaultProfileID
	}
	localPointer := s.state.ActiveProfile(s.session.AccountID())

	chosen := ResolveActiveProfile(profiles, localPointer, serverPointer)

	if err := s.state.SetActiveProfile(s.session.AccountID(), chosen.ID); err != nil {
		return nil, err
	}

	// Confirm server-side. A failure here does not invalidate the local
	// choice; the next Resolve reconciles.
	switched, err := s.session.SwitchProfile(ctx, chosen.ID)
	if err != nil {
		if isUnavailable(err) {
			return chosen, nil
		}
		return nil, err
	}
	return switched, nil
}

// fetch loads the account summary and profile list with bounded,
// per-attempt-timed retries.
func (s *Synchronizer) fetch(ctx context.Context) (*MeResponse, []Profile, error) {
	var (
		me       *MeResponse
		profiles []Profile
	)

	backoff := retry.WithMaxRetries(s.opts.MaxRetries, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.AttemptTimeout)
		defer cancel()

		var err error
		me, err = s.session.Me(attemptCtx)
		if err != nil {
			return retryableIfUnavailable(err)
		}

		profiles, err = s.session.ListProfiles(attemptCtx)
		if err != nil {
			return retryableIfUnavailable(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return me, profiles, nil
}

func (s *Synchronizer) createDefault(ctx context.Context, displayName string) (*Profile, error) {
	name := displayName
	if name == "" {
		name = "Student 1"
	}
	return s.session.CreateProfile(ctx, CreateProfileRequest{Name: name})
}

// transientProfile synthesizes a degraded placeholder. It is marked
// Transient, never persisted, and never sent to the server.
func (s *Synchronizer) transientProfile() *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        "transient-" + s.state.InstallationID(),
		AccountID: s.session.AccountID(),
		Name:      "Offline",
		Color:     "#9E9E9E",
		CreatedAt: now,
		UpdatedAt: now,
		Transient: true,
	}
}

// retryableIfUnavailable marks transport-level failures as retryable so
// the backoff keeps going; API-level errors abort immediately.
func retryableIfUnavailable(err error) error {
	if isUnavailable(err) {
		return retry.RetryableError(fmt.Errorf("%w: %w", ErrBackendUnavailable, err))
	}
	return err
}

// isUnavailable reports whether the failure means "backend unreachable or
// too slow" rather than a definite API answer. Server 5xx counts: the
// service answered but cannot currently serve. A canceled context is the
// caller's decision, not the backend's state, and propagates as an error
// instead of degrading to a transient profile.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}

	// Anything that is not a typed API error is a transport failure.
	return true
}
