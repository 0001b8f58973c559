package main

import (
	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/aaronson2012/JAKOBOT/bot/app"
	"github.com/aaronson2012/JAKOBOT/bot/weather"
)

// commands is the static command table
// 在这里配置 JAKOBOT 的功能
func commands(forecasts weather.Fetcher) []bot.Module {
	return append(app.Modules(),
		weather.Module(forecasts),
	)
}
