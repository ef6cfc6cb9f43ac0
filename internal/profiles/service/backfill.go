package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/readspacehq/readspace/pkg/slogx"
)

// ErrBackfillIncomplete marks a run that finished but could not tighten
// every scoped table because NULL references remain. The run itself is
// still considered successful; re-running after fixing the stragglers
// completes the tightening.
var ErrBackfillIncomplete = errors.New("backfill_incomplete")

// BackfillReport summarizes one backfill run for the admin response.
type BackfillReport struct {
	AccountsProcessed int   `json:"accounts_processed"`
	AccountsUpgraded  int   `json:"accounts_upgraded"`
	ProfilesCreated   int   `json:"profiles_created"`
	DocumentsUpdated  int64 `json:"documents_updated"`
	NotifsUpdated     int64 `json:"notifications_updated"`

	DocumentsTightened bool `json:"documents_tightened"`
	NotifsTightened    bool `json:"notifications_tightened"`
}

// Complete reports whether both scoped tables ended the run tightened.
func (r BackfillReport) Complete() bool {
	return r.DocumentsTightened && r.NotifsTightened
}

// BackfillService re-homes legacy data onto profiles. It is admin-only and
// safe to re-run: every step checks before it writes, so a second run over
// a converged database changes nothing.
type BackfillService struct {
	Store store.Store
}

// Run processes every account in its own transaction, then attempts the
// per-table constraint tightening. A failed account is logged and skipped;
// it does not abort the run.
func (s *BackfillService) Run(ctx context.Context) (BackfillReport, error) {
	l := slogx.FromContext(ctx)
	var report BackfillReport

	ids, err := s.Store.Accounts().ListAccountIDs(ctx)
	if err != nil {
		return report, err
	}

	for _, accountID := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.backfillAccount(ctx, accountID, &report); err != nil {
			l.Error("backfill failed for account, skipping",
				slog.String("account_id", accountID),
				slog.Any("error", err))
			continue
		}
		report.AccountsProcessed++
	}

	report.DocumentsTightened = s.tighten(ctx, "documents", func(c context.Context) (int64, error) {
		return s.Store.Documents().CountMissingProfileRef(c)
	})
	report.NotifsTightened = s.tighten(ctx, "notifications", func(c context.Context) (int64, error) {
		return s.Store.Notifications().CountMissingProfileRef(c)
	})

	if !report.Complete() {
		l.Warn("backfill finished with untightened tables",
			slog.Bool("documents", report.DocumentsTightened),
			slog.Bool("notifications", report.NotifsTightened))
	}
	return report, nil
}

// backfillAccount converges one account inside a single transaction:
// upgrade the embedded representation, guarantee a default profile, then
// re-home the account's legacy scoped rows onto it.
func (s *BackfillService) backfillAccount(ctx context.Context, accountID string, report *BackfillReport) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}

		if account.ProfileSchema == domain.ProfileSchemaEmbedded {
			if err := upgradeEmbedded(ctx, tx, account); err != nil {
				return err
			}
			report.AccountsUpgraded++
			account.ProfileSchema = domain.ProfileSchemaNormalized
		}

		profiles, err := tx.Profiles().ListActiveProfiles(ctx, accountID)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			created, err := createDefaultProfile(ctx, tx, account)
			if err != nil {
				return err
			}
			report.ProfilesCreated++
			profiles = []domain.Profile{created}
		}

		target := profiles[0].ID
		if account.DefaultProfileID != nil {
			for _, p := range profiles {
				if p.ID == *account.DefaultProfileID {
					target = p.ID
					break
				}
			}
		}
		if account.DefaultProfileID == nil {
			if err := tx.Accounts().SetDefaultProfile(ctx, accountID, &target); err != nil {
				return err
			}
		}

		nDocs, err := tx.Documents().BackfillProfileRef(ctx, accountID, target)
		if err != nil {
			return err
		}
		report.DocumentsUpdated += nDocs

		nNotifs, err := tx.Notifications().BackfillProfileRef(ctx, accountID, target)
		if err != nil {
			return err
		}
		report.NotifsUpdated += nNotifs

		return nil
	})
}

// upgradeEmbedded copies every blob profile into a normalized row,
// soft-deleted ones included, and flips the schema marker. Profiles
// already copied on a previous partial run are skipped by id.
func upgradeEmbedded(ctx context.Context, tx store.Tx, account domain.Account) error {
	embedded, err := tx.EmbeddedProfiles().ListProfiles(ctx, account.ID)
	if err != nil {
		return err
	}
	for _, p := range embedded {
		if err := tx.Profiles().CreateProfile(ctx, p); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return err
		}
	}
	return tx.Accounts().SetProfileSchema(ctx, account.ID, domain.ProfileSchemaNormalized)
}

func createDefaultProfile(ctx context.Context, tx store.Tx, account domain.Account) (domain.Profile, error) {
	name := account.DisplayName
	if !domain.ValidProfileName(name) {
		name = fallbackProfileName
	}
	p := domain.Profile{
		ID:        idx.New().String(),
		AccountID: account.ID,
		Name:      name,
		Color:     domain.DefaultProfileColors[0],
		Active:    true,
	}
	if err := tx.Profiles().CreateProfile(ctx, p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// tighten installs the NOT NULL enforcement for one scoped table when no
// legacy rows remain. Already-enforced tables short-circuit to true.
func (s *BackfillService) tighten(ctx context.Context, table string, countMissing func(context.Context) (int64, error)) bool {
	l := slogx.FromContext(ctx)

	enforced, err := s.Store.Schema().ProfileRefEnforced(ctx, table)
	if err != nil {
		l.Error("tightening state check failed", slog.String("table", table), slog.Any("error", err))
		return false
	}
	if enforced {
		return true
	}

	missing, err := countMissing(ctx)
	if err != nil {
		l.Error("tightening count failed", slog.String("table", table), slog.Any("error", err))
		return false
	}
	if missing > 0 {
		l.Warn("MigrationIncomplete: legacy rows remain, skipping tightening",
			slog.String("table", table),
			slog.Int64("missing", missing))
		return false
	}

	if err := s.Store.Schema().EnforceProfileRef(ctx, table); err != nil {
		l.Error("tightening failed", slog.String("table", table), slog.Any("error", err))
		return false
	}
	l.Info("profile reference tightened", slog.String("table", table))
	return true
}
