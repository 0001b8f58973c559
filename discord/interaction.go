package discord

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aaronson2012/JAKOBOT/bot"
)

// responder is the part of *discordgo.Session that answers interactions.
type responder interface {
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(i *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// interaction adapts a slash command invocation to bot.Interaction.
//
// The first Reply answers the interaction. When the handler is slow the
// interaction is acknowledged with a deferred response first and the Reply
// then replaces that placeholder. Later replies are follow-up messages.
type interaction struct {
	session responder
	raw     *discordgo.Interaction
	data    discordgo.ApplicationCommandInteractionData

	mu       sync.Mutex
	timer    *time.Timer
	deferred bool
	answered bool
}

func newInteraction(s responder, raw *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) *interaction {
	return &interaction{session: s, raw: raw, data: data}
}

func (in *interaction) CommandName() string {
	return in.data.Name
}

func (in *interaction) Option(name string) (string, bool) {
	return optionValue(in.data.Options, name)
}

// deferAfter acknowledges the interaction after d unless a reply went out first.
func (in *interaction) deferAfter(d time.Duration) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.timer = time.AfterFunc(d, in.acknowledge)
}

// finish stops a pending acknowledgement once the handler returned.
func (in *interaction) finish() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.timer != nil {
		in.timer.Stop()
	}
}

func (in *interaction) acknowledge() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.answered || in.deferred {
		return
	}
	err := in.session.InteractionRespond(in.raw, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.Errorf("cannot defer interaction %s: %v", in.data.Name, err)
		return
	}
	in.deferred = true
}

func (in *interaction) Reply(ctx context.Context, r bot.Reply) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.timer != nil {
		in.timer.Stop()
	}
	opt := discordgo.WithContext(ctx)

	switch {
	case in.answered:
		_, err := in.session.FollowupMessageCreate(in.raw, true, webhookParams(r), opt)
		return err
	case in.deferred:
		if err := in.replaceDeferred(r, opt); err != nil {
			return err
		}
	default:
		err := in.session.InteractionRespond(in.raw, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: responseData(r),
		}, opt)
		if err != nil {
			return err
		}
	}
	in.answered = true
	return nil
}

// replaceDeferred turns the public "thinking" placeholder into r. The
// placeholder cannot become ephemeral, so an ephemeral r replaces it with a
// follow-up.
func (in *interaction) replaceDeferred(r bot.Reply, opt discordgo.RequestOption) error {
	if !r.Ephemeral {
		embeds := messageEmbeds(r.Embeds)
		_, err := in.session.InteractionResponseEdit(in.raw, &discordgo.WebhookEdit{
			Content: &r.Content,
			Embeds:  &embeds,
		}, opt)
		return err
	}
	if err := in.session.InteractionResponseDelete(in.raw, opt); err != nil {
		return err
	}
	_, err := in.session.FollowupMessageCreate(in.raw, true, webhookParams(r), opt)
	return err
}

func optionValue(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, o := range opts {
		if o == nil || o.Name != name {
			continue
		}
		switch v := o.Value.(type) {
		case string:
			return v, true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(v), true
		case nil:
			return "", false
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

var optionTypes = map[bot.OptionType]discordgo.ApplicationCommandOptionType{
	bot.OptionString:  discordgo.ApplicationCommandOptionString,
	bot.OptionInteger: discordgo.ApplicationCommandOptionInteger,
	bot.OptionBoolean: discordgo.ApplicationCommandOptionBoolean,
}

func applicationCommands(descs []bot.Descriptor) []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(descs))
	for _, d := range descs {
		cmd := &discordgo.ApplicationCommand{
			Type:        discordgo.ChatApplicationCommand,
			Name:        d.Name,
			Description: d.Description,
		}
		for _, o := range d.Options {
			cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
				Type:        optionTypes[o.Type],
				Name:        o.Name,
				Description: o.Description,
				Required:    o.Required,
			})
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func responseData(r bot.Reply) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content: r.Content,
		Embeds:  messageEmbeds(r.Embeds),
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func webhookParams(r bot.Reply) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content: r.Content,
		Embeds:  messageEmbeds(r.Embeds),
	}
	if r.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return params
}

func messageEmbeds(es []bot.Embed) []*discordgo.MessageEmbed {
	var out []*discordgo.MessageEmbed
	for _, e := range es {
		out = append(out, messageEmbed(e))
	}
	return out
}

func messageEmbed(e bot.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.ThumbnailURL != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	if !e.Timestamp.IsZero() {
		me.Timestamp = e.Timestamp.Format(time.RFC3339)
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return me
}
