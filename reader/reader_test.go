package reader

import (
	"testing"

	"github.com/coreos/pkg/dlopen"
)

func TestReadSymbolsMissingLibrary(t *testing.T) {
	_, err := ReadSymbols("/nonexistent/libtrion-missing.so", "__trion_symbols")
	if err != dlopen.ErrSoNotFound {
		t.Fatalf("expected ErrSoNotFound, got %v", err)
	}
}
