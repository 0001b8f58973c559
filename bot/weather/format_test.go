package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(country string) *Report {
	obs := []Observation{
		{Time: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), Temperature: 72.25, Condition: "clear sky", Icon: "01d", Humidity: 40, WindSpeed: 3.2},
		{Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Temperature: 80, Condition: "few clouds", Icon: "02d", Humidity: 55, WindSpeed: 10},
	}
	return &Report{
		City:    "Seattle",
		Country: country,
		Units:   Imperial,
		Periods: Aggregate(obs, 0, Imperial),
	}
}

func TestForecastEmbed_Manual(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	e := ForecastEmbed(sampleReport(""), Manual, now)

	assert.Equal(t, "Weather Forecast for Seattle "+Morning.Emoji(), e.Title)
	assert.Equal(t, "Forecast for Morning, Noon, Afternoon, and Night.", e.Description)
	assert.Equal(t, 0x0099FF, e.Color)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, IconURL("02d"), e.ThumbnailURL, "noon icon")

	require.Len(t, e.Fields, 4)
	assert.Equal(t, "Morning "+Morning.Emoji(), e.Fields[0].Name)
	assert.True(t, e.Fields[0].Inline)
	assert.Equal(t,
		"* **Temp:** 72.3°F "+TemperatureEmoji(72.3)+"\n"+
			"* **Description:** clear sky "+ConditionEmoji("clear sky")+"\n"+
			"* **Humidity:** 40% "+HumidityEmoji(40)+"\n"+
			"* **Wind Speed:** 3.2 mph "+WindEmoji(3.2),
		e.Fields[0].Value,
	)
	assert.Equal(t, "Not available", e.Fields[2].Value)
	assert.Equal(t, "Not available", e.Fields[3].Value)
}

func TestForecastEmbed_DailyMorning(t *testing.T) {
	e := ForecastEmbed(sampleReport("US"), DailyMorning, time.Now())

	assert.Contains(t, e.Title, "Good Morning! Weather Forecast for Seattle ")
	assert.NotEqual(t, "Good Morning! Weather Forecast for Seattle "+Morning.Emoji(), e.Title, "flag is shown")
	assert.Equal(t, "Here is your weather forecast for today:", e.Description)
	assert.Equal(t, IconURL("01d"), e.ThumbnailURL, "morning icon")
}

func TestForecastEmbed_NoThumbnailWhenUnavailable(t *testing.T) {
	r := &Report{City: "Nowhere", Units: Metric, Periods: Aggregate(nil, 0, Metric)}
	e := ForecastEmbed(r, Manual, time.Now())
	assert.Equal(t, "", e.ThumbnailURL)
	for _, f := range e.Fields {
		assert.Equal(t, "Not available", f.Value)
	}
}

func TestPeriodText_Metric(t *testing.T) {
	p := Period{
		Bucket:         Noon,
		Available:      true,
		Temperature:    21,
		Representative: Observation{Condition: "light rain", Humidity: 90, WindSpeed: 4.5},
		HumidityEmoji:  HumidityEmoji(90),
	}
	assert.Equal(t,
		"* **Temp:** 21°C\n* **Description:** light rain\n* **Humidity:** 90% "+HumidityEmoji(90)+"\n* **Wind Speed:** 4.5 m/s",
		periodText(p, Metric),
	)
}
