package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ApologyMessage is sent, once, when a handler fails.
const ApologyMessage = "There was an error while executing this command!"

const defaultHandlerTimeout = 10 * time.Second

// Dispatcher routes interactions to the handler registered under their name.
type Dispatcher struct {
	registry *Registry
	timeout  time.Duration
	newID    func() string
}

type DispatcherConfig func(d *Dispatcher)

// SetHandlerTimeout bounds how long a single handler may run.
func SetHandlerTimeout(timeout time.Duration) DispatcherConfig {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDispatcher(registry *Registry, configs ...DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		timeout:  defaultHandlerTimeout,
		newID:    func() string { return uuid.NewString() },
	}
	for i := range configs {
		configs[i](d)
	}
	return d
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs the handler for in. Unknown commands are ignored. A failing
// handler is logged and answered with ApologyMessage; the returned error is only
// non-nil when that apology itself could not be delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, in Interaction) error {
	name := in.CommandName()
	entry := logger.WithFields(log.Fields{
		"command":    name,
		"request_id": d.newID(),
	})

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		entry.Debug("no handler for command, ignore")
		return nil
	}

	req := &Request{
		Interaction: in,
		Commands:    d.registry.Descriptors(),
		Log:         entry,
	}

	start := time.Now()
	err := d.invoke(ctx, cmd, req)
	commandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err == nil {
		commandsTotal.WithLabelValues(name, "ok").Inc()
		entry.Debugf("handled in %s", time.Since(start))
		return nil
	}

	commandsTotal.WithLabelValues(name, "error").Inc()
	entry.Errorf("error executing slash command %s: %v", name, err)
	// the interaction must not stay unanswered, use a fresh context in case the
	// handler ran out of time
	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()
	if rerr := in.Reply(replyCtx, Reply{Content: ApologyMessage, Ephemeral: true}); rerr != nil {
		entry.Errorf("cannot send apology: %v", rerr)
		return fmt.Errorf("reply to failed command %s: %w", name, rerr)
	}
	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, cmd Command, req *Request) (err error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	defer func() {
		if pan := recover(); pan != nil {
			req.Log.Errorf("handler panic: %v\n%s", pan, debug.Stack())
			err = fmt.Errorf("handler panic: %v", pan)
		}
	}()
	return cmd.Handle(ctx, req)
}
