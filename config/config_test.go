package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/repr"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "trion-config")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	mod := Default("hello")
	mod.History = "/tmp/history"
	if err := Save(dir, mod); err != nil {
		t.Fatal(err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != mod {
		t.Fatalf("got %s, want %s", repr.String(got), repr.String(mod))
	}
	if got.HistoryPath() != "/tmp/history" {
		t.Fatalf("unexpected history path %s", got.HistoryPath())
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	if err := ioutil.WriteFile(filepath.Join(dir, FileName), []byte("Package: demo\nWarnings: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Package != "demo" || got.Main != "main.tri" || got.Prompt != "trion> " || got.Warnings {
		t.Fatalf("unexpected module %s", repr.String(got))
	}
}

func TestMissingAndBrokenFiles(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	mod, err := LoadOrDefault(dir)
	if err != nil || mod != Default("") {
		t.Fatalf("got %s, %v", repr.String(mod), err)
	}

	if err := ioutil.WriteFile(filepath.Join(dir, FileName), []byte("Package: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(dir); err == nil {
		t.Fatalf("expected a yaml error")
	}
}
