package weather

// Units is the OpenWeatherMap measurement system.
type Units string

const (
	Imperial Units = "imperial" // Fahrenheit, miles/hour
	Metric   Units = "metric"   // Celsius, meter/sec
)

func (u Units) TemperatureSymbol() string {
	if u == Metric {
		return "°C"
	}
	return "°F"
}

func (u Units) SpeedSymbol() string {
	if u == Metric {
		return "m/s"
	}
	return "mph"
}

// fahrenheit converts a temperature in u to Fahrenheit
func (u Units) fahrenheit(t float64) float64 {
	if u == Metric {
		return t*9/5 + 32
	}
	return t
}

// mph converts a wind speed in u to miles/hour
func (u Units) mph(s float64) float64 {
	if u == Metric {
		return s * 2.236936
	}
	return s
}
