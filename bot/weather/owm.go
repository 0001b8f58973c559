package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

const openWeatherMapAPIIconURL = "http://openweathermap.org/img/wn/%s@2x.png"

// Forecast is the parsed 5 day / 3 hour forecast of a city.
type Forecast struct {
	City         string
	Country      string        // ISO 3166 code, e.g. "US"
	Offset       time.Duration // shift of the city's clock from UTC
	Observations []Observation
}

// forecastResponse See also https://openweathermap.org/forecast5
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"` // Time of the forecasted data, Unix, UTC
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []Condition `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int64  `json:"timezone"` // Shift in seconds from UTC
	} `json:"city"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// IconURL returns the URL where you can download icon image
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(openWeatherMapAPIIconURL, icon)
}

func (r forecastResponse) forecast() *Forecast {
	f := &Forecast{
		City:         r.City.Name,
		Country:      r.City.Country,
		Offset:       time.Duration(r.City.Timezone) * time.Second,
		Observations: make([]Observation, 0, len(r.List)),
	}
	for _, item := range r.List {
		o := Observation{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			o.Condition = item.Weather[0].Description
			o.Icon = item.Weather[0].Icon
		}
		f.Observations = append(f.Observations, o)
	}
	return f
}

// statusCode is "cod", which OpenWeatherMap sends either as a number or a string
type statusCode int

func (c *statusCode) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*c = statusCode(n)
	return nil
}

// APIError is the error body of OpenWeatherMap.
type APIError struct {
	Code    statusCode `json:"cod"`
	Message string     `json:"message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("error code: %d message: %s", e.Code, e.Message)
}

// Client fetches forecasts of one city.
type Client struct {
	city    string
	apiKey  string
	units   Units
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	return &Client{
		city:    cfg.City,
		apiKey:  cfg.APIKey,
		units:   cfg.units(),
		baseURL: cfg.forecastURL(),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweathermap",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Forecast fetches the forecast. It fails fast while the upstream is failing
// repeatedly.
func (c *Client) Forecast(ctx context.Context) (*Forecast, error) {
	res, err := c.circuit.Execute(func() (interface{}, error) {
		var r forecastResponse
		if err := c.sendPayload(ctx, c.requestURL(), &r); err != nil {
			return nil, err
		}
		return r.forecast(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Forecast), nil
}

func (c *Client) requestURL() string {
	values := url.Values{}
	values.Set("q", c.city)
	values.Set("appid", c.apiKey)
	values.Set("units", string(c.units))
	return c.baseURL + "?" + values.Encode()
}

func (c *Client) sendPayload(ctx context.Context, u string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	// try err cap
	ec := APIError{}
	if err := json.Unmarshal(body, &ec); err == nil && ec.Code != http.StatusOK && ec.Code != 0 {
		return ec
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: HTTP %d", res.StatusCode)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
