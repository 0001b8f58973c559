package weather

import (
	"context"
	"fmt"

	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = bot.GetModuleLogger("weather")

var (
	// Forecast fetches by outcome: ok, not_configured, failed.
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jakobot_forecast_fetch_total",
			Help: "Total number of weather forecast fetches",
		},
		[]string{"status"},
	)
	// Daily posts by outcome: ok, failed.
	postsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jakobot_scheduled_posts_total",
			Help: "Total number of scheduled forecast posts",
		},
		[]string{"status"},
	)
)

func init() {
	bot.MustRegisterMetrics(fetchTotal, postsTotal)
}

// Report is the aggregated forecast, one Period per bucket in Buckets order.
type Report struct {
	City    string
	Country string
	Units   Units
	Periods []Period
}

// Period returns the summary of b.
func (r *Report) Period(b Bucket) Period {
	for _, p := range r.Periods {
		if p.Bucket == b {
			return p
		}
	}
	return Period{Bucket: b}
}

type Forecaster interface {
	Forecast(ctx context.Context) (*Forecast, error)
}

// Fetcher produces reports. Errors wrap ErrNotConfigured or ErrFetchFailed.
type Fetcher interface {
	Fetch(ctx context.Context) (*Report, error)
}

type Service struct {
	units      Units
	forecaster Forecaster
	configErr  error
}

// NewService builds a service for cfg. An incomplete cfg still yields a
// service; its Fetch reports ErrNotConfigured.
func NewService(cfg Config) *Service {
	s := &Service{units: cfg.units()}
	if err := cfg.CheckForecast(); err != nil {
		s.configErr = err
		return s
	}
	s.forecaster = NewClient(cfg)
	return s
}

// NewServiceWith uses forecaster as the upstream.
func NewServiceWith(forecaster Forecaster, units Units) *Service {
	if units == "" {
		units = Imperial
	}
	return &Service{units: units, forecaster: forecaster}
}

// ConfigErr is nil when on-demand forecasts are available.
func (s *Service) ConfigErr() error {
	return s.configErr
}

func (s *Service) Fetch(ctx context.Context) (*Report, error) {
	if s.configErr != nil {
		fetchTotal.WithLabelValues("not_configured").Inc()
		return nil, s.configErr
	}
	f, err := s.forecaster.Forecast(ctx)
	if err != nil {
		fetchTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	fetchTotal.WithLabelValues("ok").Inc()
	return &Report{
		City:    f.City,
		Country: f.Country,
		Units:   s.units,
		Periods: Aggregate(f.Observations, f.Offset, s.units),
	}, nil
}
