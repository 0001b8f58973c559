// Package telegram serves the command table over the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"

	"github.com/aaronson2012/JAKOBOT/bot"
)

var logger = bot.GetModuleLogger("telegram")

type Bot struct {
	bot        *tgbotapi.BotAPI
	dispatcher *bot.Dispatcher

	handleFromNow bool
	client        *http.Client
	debug         bool
}

func (b *Bot) Bot() *tgbotapi.BotAPI {
	return b.bot
}

func (b *Bot) SetClient(client *http.Client) {
	b.client = client
	b.bot.Client = client
}

func (b *Bot) TGCommands() []tgbotapi.BotCommand {
	return botCommands(b.dispatcher.Registry().Descriptors())
}

// RegisterCommands publishes the command table so clients can autocomplete it.
func (b *Bot) RegisterCommands() error {
	if err := b.Bot().SetMyCommands(b.TGCommands()); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}
	return nil
}

// Init should be called first in Listen
func (b *Bot) Init() error {
	// check network
	logger.Info("check bot network")
	for _, k := range []string{
		"http_proxy",
		"https_proxy",
		"HTTP_PROXY",
		"HTTPS_PROXY",
	} {
		logger.Infof("Network env %s: %s", k, os.Getenv(k))
	}
	return b.RegisterCommands()
}

// Listen starts the bot main server loop and returns once ctx is done.
// timeout is the long poll duration in seconds, the server holds the request
// at most that long until an update is available.
func (b *Bot) Listen(ctx context.Context, timeout int) error {
	startListenDate := time.Now()
	updates, err := b.Bot().GetUpdatesChan(tgbotapi.UpdateConfig{
		Offset:  0,
		Limit:   0,
		Timeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("get updates: %w", err)
	}

	var inflight sync.WaitGroup
	defer inflight.Wait()
	for {
		select {
		case <-ctx.Done():
			b.Bot().StopReceivingUpdates()
			logger.Info("stop receiving updates")
			return nil
		case update, ok := <-updates:
			if !ok {
				logger.Info("update exhausted, exit")
				return nil
			}
			if b.debug {
				logger.Debugf("update: %+v", update)
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			updateTime := time.Unix(int64(update.Message.Date), 0)
			if b.handleFromNow && updateTime.Before(startListenDate) {
				logger.Infof("update is too old, ignore %d", update.UpdateID)
				continue
			}
			inflight.Add(1)
			go func(m *tgbotapi.Message) {
				defer inflight.Done()
				b.handleCommand(ctx, m)
			}(update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	name := m.Command()
	cmd, ok := b.dispatcher.Registry().Lookup(name)
	if !ok {
		if name == "start" {
			b.sendStart(m)
		}
		return
	}
	in := &interaction{
		bot:     b,
		message: m,
		options: parseArguments(m.CommandArguments(), cmd.ID().Options),
	}
	if err := b.dispatcher.Dispatch(ctx, in); err != nil {
		logger.Error(err)
	}
}

// sendStart answers the greeting every client sends on first contact.
func (b *Bot) sendStart(m *tgbotapi.Message) {
	var commands []string
	for _, cmd := range b.TGCommands() {
		commands = append(commands, "/"+cmd.Command)
	}
	_, err := b.Bot().Send(tgbotapi.NewMessage(
		m.Chat.ID,
		fmt.Sprintf("Here are the available commands:\n%s", strings.Join(commands, "\n")),
	))
	if err != nil {
		logger.Error(err)
	}
}

// PostEmbed sends e to a chat. channelID is a numeric chat id or an
// @channelusername.
func (b *Bot) PostEmbed(ctx context.Context, channelID string, e bot.Embed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := messageTo(channelID, renderEmbed(e))
	if err != nil {
		return err
	}
	msg.ParseMode = "HTML"
	_, err = b.Bot().Send(msg)
	return err
}

func messageTo(channelID string, text string) (tgbotapi.MessageConfig, error) {
	channelID = strings.TrimSpace(channelID)
	if strings.HasPrefix(channelID, "@") && len(channelID) > 1 {
		return tgbotapi.NewMessageToChannel(channelID, text), nil
	}
	id, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid telegram chat id %q", channelID)
	}
	return tgbotapi.NewMessage(id, text), nil
}

func botCommands(descs []bot.Descriptor) []tgbotapi.BotCommand {
	cmds := make([]tgbotapi.BotCommand, 0, len(descs))
	for _, d := range descs {
		cmds = append(cmds, tgbotapi.BotCommand{
			Command:     d.Name,
			Description: d.Description,
		})
	}
	return cmds
}

type BotWrapperConfig func(b *Bot)

// SetHandleFromNow
// if set to true, ignore updates before the bot's Listen loop starts
func SetHandleFromNow(yes bool) BotWrapperConfig {
	return func(b *Bot) {
		b.handleFromNow = yes
	}
}

func SetDebug(debug bool) BotWrapperConfig {
	return func(b *Bot) {
		b.debug = debug
		b.bot.Debug = debug
	}
}

func setProxy(httpProxy *http.Transport) BotWrapperConfig {
	return func(b *Bot) {
		b.client.Transport = httpProxy
	}
}

func SetProxyFromURL(u *url.URL) BotWrapperConfig {
	return setProxy(&http.Transport{
		Proxy: http.ProxyURL(u),
	})
}

func proxyTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
}

func setUpBot(api *tgbotapi.BotAPI, client *http.Client, dispatcher *bot.Dispatcher, configs ...BotWrapperConfig) *Bot {
	bw := &Bot{
		bot:        api,
		dispatcher: dispatcher,
	}
	// keep a reference to the client
	bw.SetClient(client)
	for i := range configs {
		configs[i](bw)
	}
	return bw
}

func NewMessageBot(token string, dispatcher *bot.Dispatcher, configs ...BotWrapperConfig) (*Bot, error) {
	// use a proxy client, or you cannot get bot created
	client := &http.Client{
		Transport: proxyTransport(),
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %v", err)
	}
	return setUpBot(api, client, dispatcher, configs...), nil
}
