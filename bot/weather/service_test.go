package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type forecasterFunc func(ctx context.Context) (*Forecast, error)

func (f forecasterFunc) Forecast(ctx context.Context) (*Forecast, error) {
	return f(ctx)
}

func TestService_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	s := NewService(testConfig(srv.URL))
	require.NoError(t, s.ConfigErr())

	r, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "London", r.City)
	assert.Equal(t, Imperial, r.Units)
	require.Len(t, r.Periods, 4)

	morning := r.Period(Morning)
	assert.True(t, morning.Available)
	assert.Equal(t, 55.5, morning.Temperature)
	assert.Equal(t, "mist", morning.Representative.Condition)

	night := r.Period(Night)
	assert.True(t, night.Available)
	assert.Equal(t, "", night.ConditionEmoji)
}

func TestService_NotConfigured(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.APIKey = ""
	s := NewService(cfg)

	_, err := s.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NotErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "WEATHER_API_KEY")
}

func TestService_FetchFailed(t *testing.T) {
	s := NewServiceWith(forecasterFunc(func(context.Context) (*Forecast, error) {
		return nil, errors.New("connection refused")
	}), "")

	_, err := s.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}
