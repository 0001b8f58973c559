package app

import (
	"context"
	"sync"
	"time"

	"github.com/aaronson2012/JAKOBOT/bot"
	"golang.org/x/exp/rand"
)

const coinEmoji = "\U0001FA99"

// Flipper decides a coin flip, true is heads.
type Flipper func() bool

func randomFlipper() Flipper {
	var mu sync.Mutex
	random := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	return func() bool {
		// handlers run concurrently, Rand is not safe for that
		mu.Lock()
		defer mu.Unlock()
		return random.Float64() < 0.5
	}
}

// CoinflipCommand flips with flip, or a time-seeded source when flip is nil.
func CoinflipCommand(flip Flipper) bot.Command {
	if flip == nil {
		flip = randomFlipper()
	}
	return SimpleCommand{
		name:        "coinflip",
		description: "Flip a coin and get Heads or Tails!",
		handle: func(ctx context.Context, req *bot.Request) error {
			return req.Reply(ctx, bot.Reply{Content: coinflipText(flip())})
		},
	}
}

func coinflipText(heads bool) string {
	if heads {
		return "Heads! " + coinEmoji
	}
	return "Tails! " + coinEmoji
}
