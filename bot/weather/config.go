package weather

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // the bot runs in minimal containers

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const defaultForecastURL = "https://api.openweathermap.org/data/2.5/forecast"

var (
	// ErrNotConfigured means a setting the feature needs is missing or invalid.
	ErrNotConfigured = errors.New("weather is not configured")
	// ErrFetchFailed means the upstream forecast could not be fetched or parsed.
	ErrFetchFailed = errors.New("weather fetch failed")
)

// Config is read from WEATHER_* environment variables.
type Config struct {
	APIKey    string        `env:"API_KEY" validate:"required"`
	City      string        `env:"CITY" validate:"required"`
	Timezone  string        `env:"TIMEZONE" validate:"required,timezone"`
	ChannelID string        `env:"CHANNEL_ID" validate:"required"`
	Units     Units         `env:"UNITS" envDefault:"imperial" validate:"oneof=imperial metric"`
	APIURL    string        `env:"API_URL" envDefault:"https://api.openweathermap.org/data/2.5/forecast" validate:"required,url"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"5s" validate:"gt=0"`
	PostAt    string        `env:"POST_AT" envDefault:"08:00" validate:"required,clock"`

	// Err is set when a variable could not be parsed, the feature is then off
	Err error `env:"-" validate:"-"`
}

// FromEnv reads the WEATHER_* variables. A malformed value never fails the
// caller, it is kept in Err and reported by the checks.
func FromEnv() Config {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Prefix: "WEATHER_"}); err != nil {
		c.Err = err
	}
	return c
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their environment name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("env"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return "WEATHER_" + name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, _, err := parseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// CheckForecast reports whether on-demand forecasts can be fetched.
func (c Config) CheckForecast() error {
	if c.Err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfigured, c.Err)
	}
	return notConfigured(validate.StructPartial(c, "APIKey", "City", "Units", "APIURL", "Timeout"))
}

// CheckSchedule reports whether the daily post can be armed.
func (c Config) CheckSchedule() error {
	if c.Err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfigured, c.Err)
	}
	return notConfigured(validate.Struct(c))
}

func notConfigured(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	var problems []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			problems = append(problems, fe.Field()+" is not set")
		} else {
			problems = append(problems, fmt.Sprintf("%s=%q is invalid", fe.Field(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrNotConfigured, strings.Join(problems, ", "))
}

// Location loads the configured IANA zone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c Config) forecastURL() string {
	if c.APIURL == "" {
		return defaultForecastURL
	}
	return c.APIURL
}

func (c Config) units() Units {
	if c.Units == "" {
		return Imperial
	}
	return c.Units
}

// parseClock parses "HH:MM" in 24-hour time
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
