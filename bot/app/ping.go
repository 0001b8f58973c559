package app

import (
	"context"

	"github.com/aaronson2012/JAKOBOT/bot"
)

func PingCommand() bot.Command {
	return SimpleCommand{
		name:        "ping",
		description: "Responds with Pong!",
		handle: func(ctx context.Context, req *bot.Request) error {
			return req.Reply(ctx, bot.Reply{Content: "Pong!"})
		},
	}
}
