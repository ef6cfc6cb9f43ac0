package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/readspacehq/readspace/pkg/jwtx"
)

const signingKID = "primary"

// InitSigningKey loads the Ed25519 signing key from the configured file,
// generating and persisting a fresh one when the file does not exist yet.
//
// When no file is configured the key is ephemeral: every access token is
// invalidated on restart. Fine for dev, configure a file in prod.
func InitSigningKey(cfg Config, logger *slog.Logger) (*jwtx.Signer, error) {
	if cfg.SigningKeyFile == "" {
		signer, err := jwtx.GenerateSigner(signingKID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		logger.Warn("no signing key file configured, using ephemeral key; tokens will not survive a restart")
		return signer, nil
	}

	pemKey, err := os.ReadFile(cfg.SigningKeyFile)
	switch {
	case err == nil:
		signer, err := jwtx.NewSigner(signingKID, pemKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key from %s: %w", cfg.SigningKeyFile, err)
		}
		logger.Info("signing key loaded", "path", cfg.SigningKeyFile)
		return signer, nil

	case errors.Is(err, fs.ErrNotExist):
		signer, err := jwtx.GenerateSigner(signingKID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		pemKey, err := signer.MarshalPrivateKeyPEM()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cfg.SigningKeyFile, pemKey, 0o600); err != nil {
			return nil, fmt.Errorf("failed to persist signing key to %s: %w", cfg.SigningKeyFile, err)
		}
		logger.Info("signing key generated and persisted", "path", cfg.SigningKeyFile)
		return signer, nil

	default:
		return nil, fmt.Errorf("failed to read signing key file %s: %w", cfg.SigningKeyFile, err)
	}
}
