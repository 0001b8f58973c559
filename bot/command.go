package bot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// OptionType is the value type of a declared command parameter.
type OptionType int

const (
	OptionString OptionType = iota
	OptionInteger
	OptionBoolean
)

// Option declares one parameter of a command.
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
}

// Descriptor is the public metadata of a command, submitted to the platform on
// registration. It is never modified after the command is built.
type Descriptor struct {
	Name        string
	Description string
	Options     []Option
}

type Command interface {
	ID() Descriptor

	// Handle 处理一次调用
	// 返回的 error 由 Dispatcher 记录并回复通用道歉
	Handle(ctx context.Context, req *Request) error
}

// Module builds one entry of the static command table.
type Module func() (Command, error)

// Static wraps an already constructed command as a Module.
func Static(c Command) Module {
	return func() (Command, error) {
		return c, nil
	}
}

// Interaction is one incoming command invocation, as delivered by a platform.
type Interaction interface {
	CommandName() string
	Option(name string) (string, bool)
	Reply(ctx context.Context, r Reply) error
}

// Request is what a handler receives. Commands is a snapshot of the registry
// and must be treated as read-only.
type Request struct {
	Interaction
	Commands []Descriptor
	Log      logrus.FieldLogger
}

type Reply struct {
	Content   string
	Embeds    []Embed
	Ephemeral bool
}

type Embed struct {
	Title        string
	Description  string
	Color        int
	ThumbnailURL string
	Timestamp    time.Time
	Fields       []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// ChannelPoster sends messages to a channel outside of any interaction.
type ChannelPoster interface {
	PostEmbed(ctx context.Context, channelID string, e Embed) error
}
