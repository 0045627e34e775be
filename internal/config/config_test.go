package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "mat-schedule.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	season, err := cfg.Season("")
	require.NoError(t, err)
	require.Equal(t, Season{TeamID: "768996150", SeasonID: "1560212138"}, season)
}

func TestLoad_JSON5WithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mat-schedule.json5")
	writeFile(t, path, `{
  // next season
  current_season: "2026-27",
  seasons: {
    "2026-27": { team_id: "111", season_id: "222" }
  },
  transport: "ajax",
  schedule_fields: { venue: 17 }
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "2026-27", cfg.CurrentSeason)
	require.Equal(t, "ajax", cfg.Transport)
	require.Equal(t, 17, cfg.ScheduleFields.Venue)
	// unspecified offsets keep their defaults
	require.Equal(t, 19, cfg.ScheduleFields.Opponent)
	require.Equal(t, 10, cfg.ScheduleFields.MinLength)
	// configured seasons are added to the built-in ones
	require.Len(t, cfg.Seasons, 3)

	season, err := cfg.Season("")
	require.NoError(t, err)
	require.Equal(t, Season{TeamID: "111", SeasonID: "222"}, season)
}

func TestLoad_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mat-schedule.json5")
	writeFile(t, path, `{ team_name: "Shawnee", data_dir: "data", timeout_seconds: 30 }`)
	writeFile(t, filepath.Join(dir, "mat-schedule.local.json5"), `{ data_dir: "/tmp/mat", timeout_seconds: 5, cloudflare_bypass: true }`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "Shawnee", cfg.TeamName)
	require.Equal(t, "/tmp/mat", cfg.DataDir)
	require.Equal(t, 5, cfg.TimeoutSeconds)
	require.True(t, cfg.CloudflareBypass)
	require.Equal(t, filepath.Join("/tmp/mat", "wrestling_data.json"), cfg.OutputPath())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", `{ transport: `},
		{"unknown transport", `{ transport: "carrier-pigeon" }`},
		{"unknown current season", `{ current_season: "1999-00" }`},
		{"negative offset", `{ schedule_fields: { date: -1 } }`},
		{"zero timeout", `{ timeout_seconds: 0 }`},
		{"blank home venue", `{ home_venue: "  " }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mat-schedule.json5")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSeason_Unknown(t *testing.T) {
	_, err := Default().Season("1999-00")
	require.True(t, errors.Is(err, ErrUnknownSeason))
}

func TestSeasonNames(t *testing.T) {
	require.Equal(t, []string{"2024-25", "2025-26"}, Default().SeasonNames())
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "")
	require.Equal(t, DefaultPath, ResolvePath(""))
	require.Equal(t, "custom.json5", ResolvePath("custom.json5"))

	t.Setenv(EnvPath, "/etc/mat.json5")
	require.Equal(t, "/etc/mat.json5", ResolvePath(""))
	require.Equal(t, "custom.json5", ResolvePath("custom.json5"))
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "mat-schedule.local.json5", LocalPath("mat-schedule.json5"))
	require.Equal(t, filepath.Join("conf", "app.local.json"), LocalPath(filepath.Join("conf", "app.json")))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestSetSeason(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mat-schedule.json5")

	cfg, err := SetSeason(path, "2026-27", Season{TeamID: "123", SeasonID: "456"}, true)
	require.NoError(t, err)
	require.Equal(t, "2026-27", cfg.CurrentSeason)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "2026-27", loaded.CurrentSeason)

	season, err := loaded.Season("2026-27")
	require.NoError(t, err)
	require.Equal(t, Season{TeamID: "123", SeasonID: "456"}, season)

	// adding without makeCurrent keeps the current season
	_, err = SetSeason(path, "2027-28", Season{TeamID: "789", SeasonID: "1011"}, false)
	require.NoError(t, err)

	loaded, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "2026-27", loaded.CurrentSeason)
	require.Contains(t, loaded.SeasonNames(), "2027-28")
}

func TestSetSeason_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mat-schedule.json5")

	_, err := SetSeason(path, "", Season{TeamID: "1", SeasonID: "2"}, true)
	require.Error(t, err)

	_, err = SetSeason(path, "2026-27", Season{TeamID: "abc", SeasonID: "2"}, true)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}
