package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/aaronson2012/JAKOBOT/bot/weather"
	"github.com/aaronson2012/JAKOBOT/config"
	"github.com/aaronson2012/JAKOBOT/discord"
	"github.com/aaronson2012/JAKOBOT/ops"
	"github.com/aaronson2012/JAKOBOT/telegram"
)

var (
	GitCommit string
	Version   = "dev"
)

var logger = bot.GetModuleLogger("main")

type options struct {
	envFile  string
	platform string
	debug    bool
	opsAddr  string
	urlProxy string
}

func main() {
	var opts options

	cliApp := cli.NewApp()
	cliApp.Name = "jakobot"
	cliApp.Usage = "a chat bot with slash commands and a daily weather forecast"
	cliApp.Version = Version
	cliApp.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file to load, .env when present by default",
			Destination: &opts.envFile,
		},
		&cli.StringFlag{
			Name:        "platform",
			Usage:       "discord or telegram, overrides BOT_PLATFORM",
			Destination: &opts.platform,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "verbose logging, overrides BOT_DEBUG",
			Destination: &opts.debug,
		},
		&cli.StringFlag{
			Name:        "ops-addr",
			Usage:       "listen address of /healthz and /metrics, overrides BOT_OPS_ADDR",
			Destination: &opts.opsAddr,
		},
		&cli.StringFlag{
			Name:        "url-proxy",
			Usage:       "fixed proxy for the telegram api",
			Destination: &opts.urlProxy,
		},
	}
	cliApp.Action = func(c *cli.Context) error {
		cfg, err := config.Load(opts.envFile)
		if err != nil {
			return err
		}
		if c.IsSet("platform") {
			cfg.Platform = opts.platform
		}
		if c.IsSet("debug") {
			cfg.Debug = opts.debug
		}
		if c.IsSet("ops-addr") {
			cfg.OpsAddr = opts.opsAddr
		}
		return run(c.Context, cfg, opts)
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(parent context.Context, cfg *config.Config, opts options) error {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	logger.Infof("starting jakobot %s (%s) on %s", Version, GitCommit, cfg.Platform)

	forecasts := weather.NewService(cfg.Weather)
	if err := forecasts.ConfigErr(); err != nil {
		logger.Warnf("/weather will report it is not configured: %v", err)
	}
	registry := bot.NewRegistry(commands(forecasts)...)
	dispatcher := bot.NewDispatcher(registry, bot.SetHandlerTimeout(cfg.HandlerTimeout))
	logger.Infof("loaded %d commands", registry.Len())

	morning := weather.NewMorningPost(cfg.Weather, forecasts)
	defer morning.Stop()
	armMorning := func(poster bot.ChannelPoster) {
		if err := morning.Setup(poster); err != nil {
			if errors.Is(err, weather.ErrNotConfigured) {
				logger.Warnf("daily forecast disabled: %v", err)
				return
			}
			logger.Errorf("daily forecast: %v", err)
		}
	}

	if cfg.OpsAddr != "" {
		srv := ops.NewServer(cfg.OpsAddr, dispatcher.Registry(), morning)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Errorf("ops server shutdown: %v", err)
			}
		}()
	}

	// handler keyboard interrupt, docker stop, etc
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Platform {
	case config.PlatformDiscord:
		return runDiscord(ctx, cfg, dispatcher, armMorning)
	case config.PlatformTelegram:
		return runTelegram(ctx, cfg, opts, dispatcher, armMorning)
	default:
		return fmt.Errorf("unknown platform %q", cfg.Platform)
	}
}

func runDiscord(ctx context.Context, cfg *config.Config, dispatcher *bot.Dispatcher, ready func(bot.ChannelPoster)) error {
	b, err := discord.New(cfg.Token, dispatcher,
		discord.SetGuild(cfg.GuildID),
		discord.SetDebug(cfg.Debug),
	)
	if err != nil {
		return err
	}
	b.OnReady(func(_ context.Context, poster bot.ChannelPoster) {
		ready(poster)
	})
	if err := b.Open(); err != nil {
		return err
	}
	<-ctx.Done()
	logger.Info("signal received, exiting gracefully...")
	return b.Close()
}

func runTelegram(ctx context.Context, cfg *config.Config, opts options, dispatcher *bot.Dispatcher, ready func(bot.ChannelPoster)) error {
	configs := []telegram.BotWrapperConfig{
		telegram.SetHandleFromNow(true),
		telegram.SetDebug(cfg.Debug),
	}
	if opts.urlProxy != "" {
		u, err := url.Parse(opts.urlProxy)
		if err != nil {
			return err
		}
		configs = append(configs, telegram.SetProxyFromURL(u))
	}
	b, err := telegram.NewMessageBot(cfg.Token, dispatcher, configs...)
	if err != nil {
		return err
	}
	if err := b.Init(); err != nil {
		return err
	}
	ready(b)
	logger.Info("bot start listening")
	return b.Listen(ctx, 60)
}
