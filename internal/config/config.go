package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/normalize"
	"github.com/titanous/json5"
)

const (
	// DefaultPath is used when neither a flag nor EnvPath names a file
	DefaultPath = "mat-schedule.json5"
	// EnvPath names the environment variable holding the config path
	EnvPath = "MAT_SCHEDULE_CONFIG"
)

// ErrUnknownSeason is returned when a season name is not configured
var ErrUnknownSeason = errors.New("unknown season")

var validTransports = []string{"http", "ajax", "frame", "browser"}

// Season holds the site identifiers of one team season
type Season struct {
	TeamID   string `json:"team_id"`
	SeasonID string `json:"season_id"`
}

// Config is the full application configuration
type Config struct {
	CurrentSeason    string                   `json:"current_season"`
	Seasons          map[string]Season        `json:"seasons"`
	TeamName         string                   `json:"team_name"`
	HomeVenue        string                   `json:"home_venue"`
	BaseURL          string                   `json:"base_url"`
	GBID             string                   `json:"gb_id"`
	Transport        string                   `json:"transport"`
	TimeoutSeconds   int                      `json:"timeout_seconds"`
	UserAgent        string                   `json:"user_agent,omitempty"`
	CloudflareBypass bool                     `json:"cloudflare_bypass"`
	SessionID        string                   `json:"session_id,omitempty"`
	DataDir          string                   `json:"data_dir"`
	OutputFile       string                   `json:"output_file"`
	ScheduleFields   normalize.FieldMap       `json:"schedule_fields"`
	RosterFields     normalize.RosterFieldMap `json:"roster_fields"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		CurrentSeason: "2025-26",
		Seasons: map[string]Season{
			"2024-25": {TeamID: "1441922147", SeasonID: "842514138"},
			"2025-26": {TeamID: "768996150", SeasonID: "1560212138"},
		},
		TeamName:       "Shawnee High School",
		HomeVenue:      "Shawnee High School",
		BaseURL:        "https://www.trackwrestling.com",
		GBID:           "36",
		Transport:      "http",
		TimeoutSeconds: 30,
		DataDir:        "data",
		OutputFile:     "wrestling_data.json",
		ScheduleFields: normalize.DefaultFieldMap(),
		RosterFields:   normalize.DefaultRosterFieldMap(),
	}
}

// ResolvePath picks the config path: the explicit path if set, else the
// EnvPath variable, else DefaultPath
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return DefaultPath
}

// LocalPath returns the override file path for a config path,
// e.g. mat-schedule.json5 -> mat-schedule.local.json5
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// Load reads the config file at path and merges its local override over it.
// Missing files are not an error; the defaults fill whatever is absent.
func Load(path string) (Config, error) {
	cfg := Default()

	base, err := readFile(path)
	if err != nil {
		return cfg, err
	}
	if base != nil {
		if err := json5.Unmarshal(base, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	localPath := LocalPath(path)
	local, err := readFile(localPath)
	if err != nil {
		return cfg, err
	}
	if local != nil {
		var override Config
		if err := json5.Unmarshal(local, &override); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", localPath, err)
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("merging %s: %w", localPath, err)
		}
		logger.Info("merging config with local overrides", logger.Fields{"local": localPath})
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// readFile returns nil without error when the file does not exist
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Validate checks settings that would otherwise fail deep inside a scrape
func (c Config) Validate() error {
	if !contains(validTransports, strings.ToLower(c.Transport)) {
		return fmt.Errorf("transport %q must be one of %s", c.Transport, strings.Join(validTransports, ", "))
	}
	if strings.TrimSpace(c.HomeVenue) == "" {
		return fmt.Errorf("home_venue must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if err := c.ScheduleFields.Validate(); err != nil {
		return err
	}
	if err := c.RosterFields.Validate(); err != nil {
		return err
	}
	if c.CurrentSeason != "" {
		if _, err := c.Season(c.CurrentSeason); err != nil {
			return fmt.Errorf("current_season: %w", err)
		}
	}
	return nil
}

// Season returns the named season, or the current season when name is empty
func (c Config) Season(name string) (Season, error) {
	if name == "" {
		name = c.CurrentSeason
	}
	s, ok := c.Seasons[name]
	if !ok {
		return Season{}, fmt.Errorf("%w: %q", ErrUnknownSeason, name)
	}
	return s, nil
}

// SeasonNames returns the configured season names in sorted order
func (c Config) SeasonNames() []string {
	names := make([]string, 0, len(c.Seasons))
	for name := range c.Seasons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OutputPath returns the data file path
func (c Config) OutputPath() string {
	return filepath.Join(c.DataDir, c.OutputFile)
}

// SetSeason adds or replaces a season in the config file at path, making it
// current when makeCurrent is set. The local override file is not touched.
func SetSeason(path, name string, season Season, makeCurrent bool) (Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Config{}, errors.New("season name is required")
	}
	if !isDigits(season.TeamID) || !isDigits(season.SeasonID) {
		return Config{}, fmt.Errorf("team and season IDs must be numeric, got %q and %q", season.TeamID, season.SeasonID)
	}

	cfg := Default()
	base, err := readFile(path)
	if err != nil {
		return cfg, err
	}
	if base != nil {
		if err := json5.Unmarshal(base, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if cfg.Seasons == nil {
		cfg.Seasons = make(map[string]Season)
	}
	cfg.Seasons[name] = season
	if makeCurrent {
		cfg.CurrentSeason = name
	}

	if err := write(path, cfg); err != nil {
		return cfg, err
	}

	logger.Info("season saved", logger.Fields{
		"season":    name,
		"team_id":   season.TeamID,
		"season_id": season.SeasonID,
		"current":   cfg.CurrentSeason == name,
	})
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
