package http

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/readspacehq/readspace/pkg/cryptox"
)

func TestMain(m *testing.M) {
	// Hashing requires a pepper file; point the package at a throwaway one
	// so tests never touch a real deployment's secret.
	pepperPath := filepath.Join(os.TempDir(), "readspace-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}
