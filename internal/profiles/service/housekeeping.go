package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

// HousekeepingService runs periodic background repairs: accounts left
// without any active profile (a contained signup failure or an interrupted
// backfill) get a default one, and old read notifications are pruned.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration // read-notification retention window

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. Interval defaults
// to 1 hour and retention to 30 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress pass ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs one housekeeping pass. Each repair is independent; a
// failure in one does not stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	s.Logger.Info("starting housekeeping pass")

	repaired, err := s.RepairProfilelessAccounts(ctx)
	if err != nil {
		s.Logger.Error("profile-less account repair failed", "error", err)
	} else if repaired > 0 {
		s.Logger.Info("repaired profile-less accounts", "count", repaired)
	}

	cutoff := time.Now().UTC().Add(-s.Retention)
	if err := s.Store.Notifications().DeleteReadNotificationsBefore(ctx, cutoff); err != nil {
		s.Logger.Error("read notification pruning failed", "error", err)
	}

	s.Logger.Info("housekeeping pass completed")
}

// RepairProfilelessAccounts creates a default profile for every account
// that has none active, returning the number repaired. Exposed so the
// pass is testable without the ticker.
func (s *HousekeepingService) RepairProfilelessAccounts(ctx context.Context) (int, error) {
	ids, err := s.Store.Accounts().ListAccountIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, accountID := range ids {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			account, err := tx.Accounts().GetAccountByID(ctx, accountID)
			if err != nil {
				return err
			}
			profiles := store.ProfilesFor(tx, account)
			count, err := profiles.CountActiveProfiles(ctx, accountID)
			if err != nil || count > 0 {
				return err
			}

			// Repair always lands on the normalized table; an embedded
			// account with nothing in its blob has nothing left to migrate.
			created, err := createDefaultProfile(ctx, tx, account)
			if err != nil {
				return err
			}
			repaired++
			if account.ProfileSchema == domain.ProfileSchemaEmbedded {
				if err := tx.Accounts().SetProfileSchema(ctx, accountID, domain.ProfileSchemaNormalized); err != nil {
					return err
				}
			}
			return tx.Accounts().SetDefaultProfile(ctx, accountID, &created.ID)
		})
		if err != nil {
			s.Logger.Error("account repair failed", "account_id", accountID, "error", err)
		}
	}
	return repaired, nil
}
