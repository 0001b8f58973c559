package app

import (
	"context"
	"strings"

	"github.com/aaronson2012/JAKOBOT/bot"
)

func HelpCommand() bot.Command {
	return SimpleCommand{
		name:        "help",
		description: "Lists all available commands.",
		handle: func(ctx context.Context, req *bot.Request) error {
			return req.Reply(ctx, bot.Reply{
				Content:   helpText(req.Commands),
				Ephemeral: true,
			})
		},
	}
}

// helpText lists every described command of the snapshot
func helpText(commands []bot.Descriptor) string {
	var sb strings.Builder
	sb.WriteString("Available Commands:\n")
	for _, d := range commands {
		if d.Name == "" || d.Description == "" {
			continue
		}
		sb.WriteString("/" + d.Name + ": " + d.Description + "\n")
	}
	return sb.String()
}
