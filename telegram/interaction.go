package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"

	"github.com/aaronson2012/JAKOBOT/bot"
)

// interaction adapts a /command message to bot.Interaction. Telegram has no
// private replies in a group, ephemeral replies are sent as a reply to the
// command message instead.
type interaction struct {
	bot     *Bot
	message *tgbotapi.Message
	options map[string]string
}

func (in *interaction) CommandName() string {
	return in.message.Command()
}

func (in *interaction) Option(name string) (string, bool) {
	v, ok := in.options[name]
	return v, ok
}

func (in *interaction) Reply(ctx context.Context, r bot.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(in.message.Chat.ID, renderReply(r))
	msg.ParseMode = "HTML"
	if r.Ephemeral {
		msg.ReplyToMessageID = in.message.MessageID
	}
	_, err := in.bot.Bot().Send(msg)
	return err
}

// parseArguments binds "/cmd a b" or "/cmd name=a" to the declared options.
// Bare words fill the options not named explicitly, in declaration order.
func parseArguments(args string, declared []bot.Option) map[string]string {
	values := make(map[string]string)
	var bare []string
	for _, word := range strings.Fields(args) {
		if k, v, ok := strings.Cut(word, "="); ok && isDeclared(declared, k) {
			values[k] = v
			continue
		}
		bare = append(bare, word)
	}
	for _, o := range declared {
		if len(bare) == 0 {
			break
		}
		if _, ok := values[o.Name]; ok {
			continue
		}
		values[o.Name] = bare[0]
		bare = bare[1:]
	}
	return values
}

func isDeclared(declared []bot.Option, name string) bool {
	for _, o := range declared {
		if o.Name == name {
			return true
		}
	}
	return false
}
