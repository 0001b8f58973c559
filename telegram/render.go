package telegram

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/aaronson2012/JAKOBOT/bot"
)

// text from commands and upstream APIs is plain, strip any markup and escape
// it before it goes into an HTML message
var plain = bluemonday.StrictPolicy()

var bold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// escape makes s safe for ParseMode HTML and turns **x** into <b>x</b>.
func escape(s string) string {
	return bold.ReplaceAllString(plain.Sanitize(s), "<b>$1</b>")
}

func renderReply(r bot.Reply) string {
	parts := make([]string, 0, len(r.Embeds)+1)
	if r.Content != "" {
		parts = append(parts, escape(r.Content))
	}
	for _, e := range r.Embeds {
		parts = append(parts, renderEmbed(e))
	}
	return strings.Join(parts, "\n\n")
}

func renderEmbed(e bot.Embed) string {
	var sb strings.Builder
	if e.Title != "" {
		sb.WriteString("<b>" + plain.Sanitize(e.Title) + "</b>\n")
	}
	if e.Description != "" {
		sb.WriteString(escape(e.Description) + "\n")
	}
	for _, f := range e.Fields {
		sb.WriteString("\n<b>" + plain.Sanitize(f.Name) + "</b>\n")
		sb.WriteString(escape(f.Value) + "\n")
	}
	if e.ThumbnailURL != "" {
		sb.WriteString(`<a href="` + plain.Sanitize(e.ThumbnailURL) + `">&#8203;</a>`)
	}
	return strings.TrimRight(sb.String(), "\n")
}
