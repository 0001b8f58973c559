package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	flag "github.com/jayco/go-emoji-flag"

	"github.com/aaronson2012/JAKOBOT/bot"
)

const (
	embedColor   = 0x0099FF
	notAvailable = "Not available"
)

// Style picks the wording of a forecast embed.
type Style int

const (
	// Manual answers the weather command.
	Manual Style = iota
	// DailyMorning is the scheduled post.
	DailyMorning
)

// ForecastEmbed renders r as a rich message timestamped now.
func ForecastEmbed(r *Report, style Style, now time.Time) bot.Embed {
	titleParts := []string{"Weather Forecast for " + r.City}
	if f := countryFlag(r.Country); f != "" {
		titleParts = append(titleParts, f)
	}
	titleParts = append(titleParts, Morning.Emoji())

	e := bot.Embed{
		Title:     strings.Join(titleParts, " "),
		Color:     embedColor,
		Timestamp: now,
	}
	thumb := Noon
	switch style {
	case DailyMorning:
		e.Title = "Good Morning! " + e.Title
		e.Description = "Here is your weather forecast for today:"
		thumb = Morning
	default:
		e.Description = "Forecast for Morning, Noon, Afternoon, and Night."
	}
	if p := r.Period(thumb); p.Available {
		e.ThumbnailURL = IconURL(p.Representative.Icon)
	}

	for _, p := range r.Periods {
		e.Fields = append(e.Fields, bot.EmbedField{
			Name:   p.Bucket.Title() + " " + p.Bucket.Emoji(),
			Value:  periodText(p, r.Units),
			Inline: true,
		})
	}
	return e
}

// countryFlag is the flag of an ISO 3166 alpha-2 code, "" for anything else
func countryFlag(code string) string {
	if len(code) != 2 {
		return ""
	}
	return flag.GetFlag(strings.ToUpper(code))
}

func periodText(p Period, units Units) string {
	if !p.Available {
		return notAvailable
	}
	rep := p.Representative
	lines := []string{
		line("Temp", formatNumber(p.Temperature)+units.TemperatureSymbol(), p.TemperatureEmoji),
		line("Description", rep.Condition, p.ConditionEmoji),
		line("Humidity", fmt.Sprintf("%d%%", rep.Humidity), p.HumidityEmoji),
		line("Wind Speed", formatNumber(rep.WindSpeed)+" "+units.SpeedSymbol(), p.WindEmoji),
	}
	return strings.Join(lines, "\n")
}

func line(label, value, decoration string) string {
	s := fmt.Sprintf("* **%s:** %s", label, value)
	if decoration != "" {
		s += " " + decoration
	}
	return s
}

// formatNumber prints the shortest exact form, 72.3 or 72
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
