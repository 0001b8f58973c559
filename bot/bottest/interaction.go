// Package bottest provides an in-memory Interaction for handler tests.
package bottest

import (
	"context"
	"sync"

	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Interaction records every reply sent through it.
type Interaction struct {
	Name    string
	Options map[string]string
	// ReplyErr, when set, is returned by every Reply call.
	ReplyErr error

	mu      sync.Mutex
	replies []bot.Reply
}

func NewInteraction(name string) *Interaction {
	return &Interaction{Name: name, Options: map[string]string{}}
}

func (i *Interaction) CommandName() string {
	return i.Name
}

func (i *Interaction) Option(name string) (string, bool) {
	v, ok := i.Options[name]
	return v, ok
}

func (i *Interaction) Reply(_ context.Context, r bot.Reply) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.replies = append(i.replies, r)
	return i.ReplyErr
}

func (i *Interaction) Replies() []bot.Reply {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]bot.Reply(nil), i.replies...)
}

// Request wraps the interaction as a handler input with the given registry
// snapshot and a discarding logger.
func Request(in bot.Interaction, commands ...bot.Descriptor) *bot.Request {
	l, _ := test.NewNullLogger()
	return &bot.Request{
		Interaction: in,
		Commands:    commands,
		Log:         logrus.NewEntry(l),
	}
}

// Poster records channel posts.
type Poster struct {
	Err error

	mu    sync.Mutex
	posts []Post
}

type Post struct {
	ChannelID string
	Embed     bot.Embed
}

func (p *Poster) PostEmbed(_ context.Context, channelID string, e bot.Embed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.posts = append(p.posts, Post{ChannelID: channelID, Embed: e})
	return nil
}

func (p *Poster) Posts() []Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Post(nil), p.posts...)
}
