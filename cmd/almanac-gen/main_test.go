package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.ConfigData {
	t.Helper()
	log.SetLogger(zap.NewNop())
	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()
	cfg.Generator.Start = "2024-12-30"
	cfg.Generator.End = "2025-01-02"
	return &cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	factsPath := filepath.Join(t.TempDir(), "facts", "facts.json")

	if err := run(cfg, 2, factsPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"2024.json", "2025.json"} {
		f, err := os.Open(filepath.Join(cfg.Storage.Dir, name))
		if err != nil {
			t.Fatal(err)
		}
		y, err := almanac.Decode(f, almanac.JSON)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(y) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	f, err := os.Open(factsPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	facts, err := almanac.DecodeFacts(f)
	if err != nil || len(facts) != len(almanac.DefaultFacts) {
		t.Errorf("facts = %d, %v", len(facts), err)
	}
}

func TestRunRejectsBadDates(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		msg        string
	}{
		{"start", "30/12/2024", "2025-01-02", "generator start"},
		{"end", "2024-12-30", "2025-13-01", "generator end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Generator.Start, cfg.Generator.End = tt.start, tt.end

			err := run(cfg, 1, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location.Timezone != "Asia/Jerusalem" {
		t.Errorf("timezone = %q", cfg.Location.Timezone)
	}
}
