package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"DATABASE_TYPE", "DATABASE_URL", "DB_PATH", "TRACK_MODIFICATIONS", "PARKS_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, DefaultDatabaseURL)
	}
	if cfg.TrackModifications {
		t.Error("TrackModifications should default to false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DB_PATH", "/tmp/parks-test.db")
	t.Setenv("TRACK_MODIFICATIONS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.DatabasePath != "/tmp/parks-test.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if !cfg.TrackModifications {
		t.Error("TrackModifications should be true")
	}
}

func TestLoadInvalidTrackModifications(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("TRACK_MODIFICATIONS", "sometimes")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TRACK_MODIFICATIONS")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "parks.yaml")
	content := "database_type: mysql\ndatabase_url: parks:secret@tcp(localhost:3306)/parks\ntrack_modifications: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARKS_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseType != "mysql" {
		t.Errorf("DatabaseType = %q, want mysql", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "parks:secret@tcp(localhost:3306)/parks" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !cfg.TrackModifications {
		t.Error("TrackModifications should come from the file")
	}
	// Untouched keys keep their defaults
	if cfg.DatabasePath != "./parks.db" {
		t.Errorf("DatabasePath = %q, want default", cfg.DatabasePath)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
