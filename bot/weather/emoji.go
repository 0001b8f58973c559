package weather

import "github.com/enescakir/emoji"

// exact match on the OpenWeatherMap description
var conditionEmojis = map[string]emoji.Emoji{
	"clear sky":        emoji.Sun,
	"few clouds":       emoji.SunBehindSmallCloud,
	"scattered clouds": emoji.Cloud,
	"broken clouds":    emoji.SunBehindLargeCloud,
	"shower rain":      emoji.SunBehindRainCloud,
	"rain":             emoji.CloudWithRain,
	"thunderstorm":     emoji.CloudWithLightningAndRain,
	"snow":             emoji.Snowflake,
	"mist":             emoji.Fog,
	"overcast clouds":  emoji.Cloud,
	"light snow":       emoji.CloudWithSnow,
}

// ConditionEmoji returns "" for conditions without an emoji.
func ConditionEmoji(description string) string {
	if e, ok := conditionEmojis[description]; ok {
		return e.String()
	}
	return ""
}

// TemperatureEmoji bands a Fahrenheit temperature.
func TemperatureEmoji(f float64) string {
	switch {
	case f > 90:
		return emoji.Fire.String() // hot
	case f > 75:
		return emoji.Sun.String() // warm
	case f > 60:
		return emoji.Thermometer.String() // moderate
	case f > 45:
		return emoji.LeafFlutteringInWind.String() // cool
	case f > 32:
		return emoji.ColdFace.String() // cold
	default:
		return emoji.Snowflake.String() // freezing
	}
}

// HumidityEmoji bands a relative humidity in percent.
func HumidityEmoji(h int) string {
	switch {
	case h > 80:
		return emoji.SweatDroplets.String()
	case h > 50:
		return emoji.Droplet.String()
	default:
		return emoji.Desert.String()
	}
}

// WindEmoji bands a wind speed in miles/hour.
func WindEmoji(mph float64) string {
	switch {
	case mph > 30:
		return emoji.Tornado.String() // high
	case mph > 15:
		return emoji.DashingAway.String() // moderate
	case mph > 5:
		return emoji.WindFace.String() // breezy
	default:
		return emoji.LeafFlutteringInWind.String() // calm
	}
}
