package weather

import (
	"context"
	"errors"
	"time"

	"github.com/aaronson2012/JAKOBOT/bot"
)

const (
	notConfiguredMessage = "Weather forecast is unavailable because it is not configured."
	fetchFailedMessage   = "Failed to fetch weather data. Please try again later."
)

type current struct {
	fetcher Fetcher
	now     func() time.Time
}

// Command is the weather slash command.
func Command(fetcher Fetcher) bot.Command {
	return current{fetcher: fetcher, now: time.Now}
}

// Module is the weather entry of the static command table.
func Module(fetcher Fetcher) bot.Module {
	return func() (bot.Command, error) {
		if fetcher == nil {
			return nil, errors.New("weather: no forecast source")
		}
		return Command(fetcher), nil
	}
}

func (c current) ID() bot.Descriptor {
	return bot.Descriptor{
		Name:        "weather",
		Description: "Fetches current weather immediately.",
	}
}

func (c current) Handle(ctx context.Context, req *bot.Request) error {
	req.Log.Info("weather command executed")
	report, err := c.fetcher.Fetch(ctx)
	switch {
	case errors.Is(err, ErrNotConfigured):
		req.Log.Warn(err)
		return req.Reply(ctx, bot.Reply{Content: notConfiguredMessage, Ephemeral: true})
	case err != nil:
		req.Log.Errorf("error fetching weather data: %v", err)
		return req.Reply(ctx, bot.Reply{Content: fetchFailedMessage, Ephemeral: true})
	}
	return req.Reply(ctx, bot.Reply{
		Embeds: []bot.Embed{ForecastEmbed(report, Manual, c.now())},
	})
}
