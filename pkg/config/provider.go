package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/sky"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// LoadConfig loads the complete configuration
	LoadConfig() (*ConfigData, error)

	// GetLocation returns the reference location
	GetLocation() (*LocationData, error)

	// GetStorageConfig returns storage backend configuration
	GetStorageConfig() (*StorageData, error)

	// GetServerConfig returns HTTP server configuration
	GetServerConfig() (*ServerData, error)

	// IsReadOnly returns true if the provider doesn't support writes
	IsReadOnly() bool

	// Close closes any resources held by the provider
	Close() error
}

// Ephemeris names accepted by the generator.
const (
	EphemerisSuncalc = "suncalc"
	EphemerisApprox  = "approx"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Location  LocationData  `yaml:"location" json:"location"`
	Generator GeneratorData `yaml:"generator" json:"generator"`
	Storage   StorageData   `yaml:"storage" json:"storage"`
	Server    ServerData    `yaml:"server" json:"server"`
	Log       LogData       `yaml:"log" json:"log"`
	Tuning    sky.Config    `yaml:"tuning" json:"-"`
}

// LocationData is the observer whose rise and set times are tabulated.
type LocationData struct {
	Name      string  `yaml:"name" json:"name,omitempty"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Timezone  string  `yaml:"timezone" json:"timezone"`
}

// GeneratorData selects the range of years produced by almanac-gen. Start is
// inclusive and End exclusive, both YYYY-MM-DD.
type GeneratorData struct {
	Start     string `yaml:"start" json:"start"`
	End       string `yaml:"end" json:"end"`
	Ephemeris string `yaml:"ephemeris" json:"ephemeris"`
}

type StorageData struct {
	Backend    string `yaml:"backend" json:"backend"`
	Dir        string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty" json:"sqlite_path,omitempty"`
	FactsFile  string `yaml:"facts_file,omitempty" json:"facts_file,omitempty"`
}

type ServerData struct {
	ListenAddr      string        `yaml:"listen_addr" json:"listen_addr"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	EnableCORS      bool          `yaml:"enable_cors" json:"enable_cors"`
}

// LogData enables an optional rotated log file next to console output.
type LogData struct {
	File       string `yaml:"file,omitempty" json:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Addr is the host:port the server listens on.
func (s ServerData) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.Port)
}

// Default returns the configuration used when a key is absent from the file:
// Tel Aviv, 1948 through 2029, JSON files under ./data, port 8080.
func Default() ConfigData {
	return ConfigData{
		Location: LocationData{
			Name:      "Tel Aviv",
			Latitude:  32.0853,
			Longitude: 34.7818,
			Timezone:  "Asia/Jerusalem",
		},
		Generator: GeneratorData{
			Start:     "1948-01-01",
			End:       "2030-01-01",
			Ephemeris: EphemerisSuncalc,
		},
		Storage: StorageData{
			Backend: BackendFile,
			Dir:     "data",
			Format:  string(almanac.JSON),
		},
		Server: ServerData{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			EnableCORS:      true,
		},
		Log: LogData{
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Tuning: sky.DefaultConfig(),
	}
}

// Validate reports the first problem found in c.
func (c *ConfigData) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location latitude %v out of range", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location longitude %v out of range", c.Location.Longitude)
	}
	if _, err := time.LoadLocation(c.Location.Timezone); err != nil {
		return fmt.Errorf("location timezone: %w", err)
	}

	start, err := almanac.ParseDate(c.Generator.Start)
	if err != nil {
		return fmt.Errorf("generator start: %w", err)
	}
	end, err := almanac.ParseDate(c.Generator.End)
	if err != nil {
		return fmt.Errorf("generator end: %w", err)
	}
	if !end.After(start) {
		return errors.New("generator end must be after start")
	}
	switch c.Generator.Ephemeris {
	case EphemerisSuncalc, EphemerisApprox:
	default:
		return fmt.Errorf("unknown ephemeris %q", c.Generator.Ephemeris)
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			return errors.New("file storage requires dir")
		}
		if _, err := almanac.ParseFormat(c.Storage.Format); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("sqlite storage requires sqlite_path")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// Location loads the configured time zone.
func (l LocationData) Location() (*time.Location, error) {
	return time.LoadLocation(l.Timezone)
}

// StaticProvider serves a configuration built in code.
type StaticProvider struct {
	config ConfigData
}

// NewStaticProvider wraps cfg as a read-only provider.
func NewStaticProvider(cfg ConfigData) *StaticProvider {
	return &StaticProvider{config: cfg}
}

func (s *StaticProvider) LoadConfig() (*ConfigData, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *StaticProvider) GetLocation() (*LocationData, error) {
	l := s.config.Location
	return &l, nil
}

func (s *StaticProvider) GetStorageConfig() (*StorageData, error) {
	st := s.config.Storage
	return &st, nil
}

func (s *StaticProvider) GetServerConfig() (*ServerData, error) {
	sv := s.config.Server
	return &sv, nil
}

func (s *StaticProvider) IsReadOnly() bool { return true }

func (s *StaticProvider) Close() error { return nil }
