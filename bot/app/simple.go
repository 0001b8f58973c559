package app

import (
	"context"

	"github.com/aaronson2012/JAKOBOT/bot"
)

type HandleFunc func(ctx context.Context, req *bot.Request) error

// SimpleCommand is a command made of a fixed descriptor and a handle function.
type SimpleCommand struct {
	name,
	description string
	options []bot.Option
	handle  HandleFunc
}

func (s SimpleCommand) ID() bot.Descriptor {
	return bot.Descriptor{
		Name:        s.name,
		Description: s.description,
		Options:     s.options,
	}
}

func (s SimpleCommand) Handle(ctx context.Context, req *bot.Request) error {
	return s.handle(ctx, req)
}

// Modules is the static table of the built-in commands.
func Modules() []bot.Module {
	return []bot.Module{
		bot.Static(PingCommand()),
		bot.Static(CoinflipCommand(nil)),
		bot.Static(HelpCommand()),
	}
}
