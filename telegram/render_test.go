package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaronson2012/JAKOBOT/bot"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Pong!", "Pong!"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"markup is stripped", "<b>hi</b>", "hi"},
		{"bold", "* **Temp:** 72.3°F", "* <b>Temp:</b> 72.3°F"},
		{"emoji", "Heads! 🪙", "Heads! 🪙"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escape(tt.in))
		})
	}
}

func TestRenderEmbed(t *testing.T) {
	got := renderEmbed(bot.Embed{
		Title:       "Weather Forecast for London",
		Description: "Here's the forecast for today:",
		Fields: []bot.EmbedField{
			{Name: "Morning", Value: "**Temp:** 61°F"},
			{Name: "Night", Value: "Not available"},
		},
	})
	want := "<b>Weather Forecast for London</b>\n" +
		"Here&#39;s the forecast for today:\n" +
		"\n<b>Morning</b>\n" +
		"<b>Temp:</b> 61°F\n" +
		"\n<b>Night</b>\n" +
		"Not available"
	assert.Equal(t, want, got)
}

func TestRenderEmbed_Thumbnail(t *testing.T) {
	got := renderEmbed(bot.Embed{Title: "t", ThumbnailURL: "http://openweathermap.org/img/wn/01d@2x.png"})
	assert.Contains(t, got, `<a href="http://openweathermap.org/img/wn/01d@2x.png">`)
}

func TestRenderReply(t *testing.T) {
	assert.Equal(t, "Pong!", renderReply(bot.Reply{Content: "Pong!"}))
	assert.Equal(t, "a\n\n<b>b</b>", renderReply(bot.Reply{Content: "a", Embeds: []bot.Embed{{Title: "b"}}}))
	assert.Equal(t, "<b>b</b>", renderReply(bot.Reply{Embeds: []bot.Embed{{Title: "b"}}}))
}
