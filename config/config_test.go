package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronson2012/JAKOBOT/bot/weather"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOT_TOKEN", "BOT_PLATFORM", "BOT_GUILD_ID", "BOT_DEBUG", "BOT_OPS_ADDR", "BOT_HANDLER_TIMEOUT",
		"WEATHER_API_KEY", "WEATHER_CITY", "WEATHER_TIMEZONE", "WEATHER_CHANNEL_ID",
		"WEATHER_UNITS", "WEATHER_API_URL", "WEATHER_TIMEOUT", "WEATHER_POST_AT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// chdir moves into dir, away from any .env of the working tree
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "secret")
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, PlatformDiscord, cfg.Platform)
	assert.Equal(t, 10*time.Second, cfg.HandlerTimeout)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.OpsAddr)

	assert.Equal(t, weather.Imperial, cfg.Weather.Units)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/forecast", cfg.Weather.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "08:00", cfg.Weather.PostAt)
	assert.ErrorIs(t, cfg.Weather.CheckForecast(), weather.ErrNotConfigured)
}

func TestLoad_Weather(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "secret")
	t.Setenv("BOT_PLATFORM", "telegram")
	t.Setenv("WEATHER_API_KEY", "k")
	t.Setenv("WEATHER_CITY", "Oslo")
	t.Setenv("WEATHER_TIMEZONE", "Europe/Oslo")
	t.Setenv("WEATHER_CHANNEL_ID", "-100123")
	t.Setenv("WEATHER_UNITS", "metric")
	t.Setenv("WEATHER_POST_AT", "07:30")
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, PlatformTelegram, cfg.Platform)
	assert.Equal(t, weather.Config{
		APIKey:    "k",
		City:      "Oslo",
		Timezone:  "Europe/Oslo",
		ChannelID: "-100123",
		Units:     weather.Metric,
		APIURL:    "https://api.openweathermap.org/data/2.5/forecast",
		Timeout:   5 * time.Second,
		PostAt:    "07:30",
	}, cfg.Weather)
	assert.NoError(t, cfg.Weather.CheckSchedule())
}

func TestLoad_MalformedWeatherIsNotFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "secret")
	t.Setenv("WEATHER_API_KEY", "k")
	t.Setenv("WEATHER_CITY", "Oslo")
	t.Setenv("WEATHER_TIMEOUT", "five seconds")
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)

	err = cfg.Weather.CheckForecast()
	assert.ErrorIs(t, err, weather.ErrNotConfigured)
	assert.ErrorContains(t, err, "Timeout")
	assert.ErrorIs(t, cfg.Weather.CheckSchedule(), weather.ErrNotConfigured)
	assert.ErrorIs(t, weather.NewService(cfg.Weather).ConfigErr(), weather.ErrNotConfigured)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TOKEN=from-file\nBOT_DEBUG=true\nBOT_OPS_ADDR=:9090\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"BOT_TOKEN", "BOT_DEBUG", "BOT_OPS_ADDR"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Token)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ":9090", cfg.OpsAddr)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		_, err := Load("")
		assert.ErrorContains(t, err, "Token")
	})
	t.Run("unknown platform", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOT_TOKEN", "secret")
		t.Setenv("BOT_PLATFORM", "irc")
		chdir(t, t.TempDir())
		_, err := Load("")
		assert.ErrorContains(t, err, "Platform")
	})
	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOT_TOKEN", "secret")
		t.Setenv("BOT_HANDLER_TIMEOUT", "soon")
		chdir(t, t.TempDir())
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("missing env file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})
}
