// Package discord connects the command dispatcher to a Discord gateway session.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aaronson2012/JAKOBOT/bot"
)

var logger = bot.GetModuleLogger("discord")

// Discord drops an interaction that is not acknowledged within 3 seconds.
// A handler still running after deferAfter gets a deferred acknowledgement.
const defaultDeferAfter = 2 * time.Second

// ReadyFunc runs after the session is ready and the commands are registered.
type ReadyFunc func(ctx context.Context, poster bot.ChannelPoster)

type Bot struct {
	session    *discordgo.Session
	dispatcher *bot.Dispatcher
	guildID    string
	deferAfter time.Duration

	hookMu  sync.RWMutex
	onReady []ReadyFunc

	ctx    context.Context
	cancel context.CancelFunc
}

type BotConfig func(b *Bot)

// SetGuild registers commands for one guild only, they show up immediately
// there instead of after the global propagation delay.
func SetGuild(guildID string) BotConfig {
	return func(b *Bot) {
		b.guildID = guildID
	}
}

func SetDebug(debug bool) BotConfig {
	return func(b *Bot) {
		if debug {
			b.session.LogLevel = discordgo.LogInformational
		}
	}
}

func New(token string, dispatcher *bot.Dispatcher, configs ...BotConfig) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	// slash commands arrive without any privileged intent
	s.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session:    s,
		dispatcher: dispatcher,
		deferAfter: defaultDeferAfter,
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())
	for i := range configs {
		configs[i](b)
	}
	s.AddHandler(b.ready)
	s.AddHandler(b.interactionCreate)
	return b, nil
}

// OnReady subscribes f to every ready event, a reconnect runs it again.
func (b *Bot) OnReady(f ReadyFunc) {
	b.hookMu.Lock()
	defer b.hookMu.Unlock()
	b.onReady = append(b.onReady, f)
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	logger.Infof("ready! logged in as %s#%s", r.User.Username, r.User.Discriminator)

	cmds := applicationCommands(b.dispatcher.Registry().Descriptors())
	// bulk overwrite replaces the whole set, re-submitting on reconnect is harmless
	created, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, cmds, discordgo.WithContext(b.ctx))
	if err != nil {
		logger.Errorf("failed to register application commands: %v", err)
	} else {
		logger.Infof("successfully reloaded %d application (/) commands", len(created))
	}

	b.hookMu.RLock()
	hooks := append([]ReadyFunc(nil), b.onReady...)
	b.hookMu.RUnlock()
	for _, f := range hooks {
		f(b.ctx, b)
	}
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.dispatch(newInteraction(s, i.Interaction, i.ApplicationCommandData()))
}

func (b *Bot) dispatch(in *interaction) {
	in.deferAfter(b.deferAfter)
	defer in.finish()
	if err := b.dispatcher.Dispatch(b.ctx, in); err != nil {
		logger.Error(err)
	}
}

// PostEmbed sends e to a text channel.
func (b *Bot) PostEmbed(ctx context.Context, channelID string, e bot.Embed) error {
	_, err := b.session.ChannelMessageSendEmbed(channelID, messageEmbed(e), discordgo.WithContext(ctx))
	return err
}
