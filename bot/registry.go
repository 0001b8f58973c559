package bot

import (
	"fmt"
	"strings"
	"sync"
)

var logger = GetModuleLogger("bot")

// Registry is the set of loaded commands. It is filled once by NewRegistry and
// only read afterwards.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []Descriptor
}

// NewRegistry builds every module of the static command table in order.
// A module that fails to build, or whose descriptor is unusable, is logged and
// left out; it never stops the others from loading.
func NewRegistry(modules ...Module) *Registry {
	r := &Registry{
		commands: make(map[string]Command),
	}
	for i, m := range modules {
		cmd, err := buildModule(m)
		if err != nil {
			logger.Errorf("error loading module #%d: %v", i, err)
			continue
		}
		if err := r.add(cmd); err != nil {
			logger.Errorf("error loading module #%d: %v", i, err)
			continue
		}
		logger.Infof("loaded module: %s", cmd.ID().Name)
	}
	return r
}

func buildModule(m Module) (cmd Command, err error) {
	defer func() {
		if pan := recover(); pan != nil {
			err = fmt.Errorf("panic while building module: %v", pan)
		}
	}()
	if m == nil {
		return nil, fmt.Errorf("nil module")
	}
	cmd, err = m()
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, fmt.Errorf("module returned no command")
	}
	return cmd, nil
}

func (r *Registry) add(cmd Command) error {
	id := cmd.ID()
	if strings.TrimSpace(id.Name) == "" {
		return fmt.Errorf("command has an empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[id.Name]; ok {
		return fmt.Errorf("duplicate command name %q", id.Name)
	}
	r.commands[id.Name] = cmd
	r.order = append(r.order, id)
	return nil
}

// Lookup finds a command by exact name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Descriptors returns the registration payload, in load order.
// The returned slice is a copy.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.order))
	for i, d := range r.order {
		d.Options = append([]Option(nil), d.Options...)
		out[i] = d
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
