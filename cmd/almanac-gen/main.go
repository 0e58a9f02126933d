package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	_ "time/tzdata"

	"github.com/chrissnell/skyalmanac/internal/generator"
	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/internal/store"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "", "Path to the YAML configuration file; empty uses built-in defaults")
	year := flag.Int("year", 0, "Generate only this year")
	start := flag.String("start", "", "First date to generate, YYYY-MM-DD (overrides config)")
	end := flag.String("end", "", "Date to stop before, YYYY-MM-DD (overrides config)")
	outDir := flag.String("out", "", "Write year files to this directory (overrides config storage)")
	format := flag.String("format", "", "Year file format for -out: json or msgpack")
	sqlitePath := flag.String("sqlite", "", "Write into this SQLite database instead of files")
	ephemeris := flag.String("ephemeris", "", "Sun ephemeris: suncalc or approx")
	workers := flag.Int("workers", 0, "Years generated in parallel (default: number of CPUs)")
	factsOut := flag.String("facts", "", "Also write the default trivia list to this file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("almanac-gen %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *year != 0 {
		cfg.Generator.Start = fmt.Sprintf("%04d-01-01", *year)
		cfg.Generator.End = fmt.Sprintf("%04d-01-01", *year+1)
	}
	if *start != "" {
		cfg.Generator.Start = *start
	}
	if *end != "" {
		cfg.Generator.End = *end
	}
	if *ephemeris != "" {
		cfg.Generator.Ephemeris = *ephemeris
	}
	if *outDir != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.Dir = *outDir
	}
	if *format != "" {
		cfg.Storage.Format = *format
	}
	if *sqlitePath != "" {
		cfg.Storage.Backend = config.BackendSQLite
		cfg.Storage.SQLitePath = *sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(cfg, *workers, *factsOut); err != nil {
		log.Errorf("Generation failed: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	if cfgFile == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	filename, _ := filepath.Abs(cfgFile)
	return config.NewYAMLProvider(filename).LoadConfig()
}

func run(cfg *config.ConfigData, workers int, factsOut string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Log.File != "" {
		lf, err := log.AttachFile(log.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		if err != nil {
			return err
		}
		defer lf.Close()
	}

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	gen, err := generator.New(cfg.Location, cfg.Generator.Ephemeris, st, workers)
	if err != nil {
		return err
	}

	startDate, err := almanac.ParseDate(cfg.Generator.Start)
	if err != nil {
		return fmt.Errorf("generator start: %w", err)
	}
	endDate, err := almanac.ParseDate(cfg.Generator.End)
	if err != nil {
		return fmt.Errorf("generator end: %w", err)
	}
	log.Infow("generating almanac",
		"location", cfg.Location.Name,
		"start", cfg.Generator.Start,
		"end", cfg.Generator.End,
		"ephemeris", cfg.Generator.Ephemeris,
		"backend", cfg.Storage.Backend,
	)
	if err := gen.Run(ctx, startDate, endDate); err != nil {
		return err
	}

	if factsOut != "" {
		if err := writeFacts(factsOut); err != nil {
			return fmt.Errorf("failed to write facts: %w", err)
		}
	}

	log.Info("Done.")
	return nil
}

func writeFacts(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := almanac.EncodeFacts(f, almanac.DefaultFacts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
