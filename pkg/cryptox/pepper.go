package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
)

// Argon2id parameters, per the OWASP password storage guidance.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// The pepper is appended to every password before hashing. It lives in
	// a file outside the database so a dumped accounts table alone is not
	// enough to crack hashes offline.
	pepper     string
	pepperFile string
)

// SetPepperPath points the package at the pepper file. Call before the
// first hash or verify.
func SetPepperPath(file string) {
	pepperFile = file
}

// GetPepper lazily loads the pepper, generating and persisting a fresh one
// when the file does not exist yet. A pepper that cannot be loaded or
// written is fatal: hashing without it would silently produce hashes that
// never verify again.
func GetPepper() string {
	if pepper != "" {
		return pepper
	}

	var err error
	pepper, err = loadOrGeneratePepper()
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}

	return pepper
}

func loadOrGeneratePepper() (string, error) {
	pepperFile = filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(pepperFile), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(pepperFile); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		generated := base64.RawURLEncoding.EncodeToString(raw)

		if err := os.WriteFile(pepperFile, []byte(generated), 0600); err != nil {
			return "", err
		}
		return generated, nil
	}

	raw, err := os.ReadFile(pepperFile)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ReloadPepper re-reads the pepper file, for use after the file has been
// restored or rotated.
func ReloadPepper() error {
	var err error
	pepper, err = loadOrGeneratePepper()
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		return err
	}
	return nil
}
