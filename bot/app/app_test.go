package app

import (
	"context"
	"testing"

	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/aaronson2012/JAKOBOT/bot/bottest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	in := bottest.NewInteraction("ping")
	require.NoError(t, PingCommand().Handle(context.Background(), bottest.Request(in)))
	replies := in.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "Pong!", replies[0].Content)
	assert.False(t, replies[0].Ephemeral)
}

func TestCoinflip(t *testing.T) {
	tests := []struct {
		name  string
		heads bool
		want  string
	}{
		{"heads", true, "Heads! 🪙"},
		{"tails", false, "Tails! 🪙"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heads := tt.heads
			cmd := CoinflipCommand(func() bool { return heads })
			in := bottest.NewInteraction("coinflip")
			require.NoError(t, cmd.Handle(context.Background(), bottest.Request(in)))
			require.Len(t, in.Replies(), 1)
			assert.Equal(t, tt.want, in.Replies()[0].Content)
		})
	}
}

func TestCoinflip_RandomSourceGivesBothSides(t *testing.T) {
	flip := randomFlipper()
	seen := map[bool]int{}
	for i := 0; i < 200; i++ {
		seen[flip()]++
	}
	assert.Greater(t, seen[true], 0)
	assert.Greater(t, seen[false], 0)
}

func TestHelp(t *testing.T) {
	snapshot := []bot.Descriptor{
		{Name: "ping", Description: "Responds with Pong!"},
		{Name: "silent"},
		{Name: "help", Description: "Lists all available commands."},
	}
	in := bottest.NewInteraction("help")
	require.NoError(t, HelpCommand().Handle(context.Background(), bottest.Request(in, snapshot...)))

	replies := in.Replies()
	require.Len(t, replies, 1)
	assert.True(t, replies[0].Ephemeral)
	assert.Equal(t,
		"Available Commands:\n/ping: Responds with Pong!\n/help: Lists all available commands.\n",
		replies[0].Content,
	)
}

func TestModules(t *testing.T) {
	r := bot.NewRegistry(Modules()...)
	var names []string
	for _, d := range r.Descriptors() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"ping", "coinflip", "help"}, names)
}
