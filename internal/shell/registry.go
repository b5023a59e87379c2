package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned for a line whose first word is not a
// registered command or alias.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one shell verb.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Summary string
	Run     func(ctx context.Context, sh *Shell, args []string) error
}

// Registry stores commands keyed by lowercase name.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

func (r *Registry) Register(cmd *Command) {
	if cmd == nil || cmd.Run == nil {
		return
	}
	name := strings.ToLower(cmd.Name)
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = name
	}
}

func (r *Registry) Lookup(key string) (*Command, bool) {
	key = strings.ToLower(key)
	if name, ok := r.aliases[key]; ok {
		key = name
	}
	cmd, ok := r.commands[key]
	return cmd, ok
}

// Execute runs the command registered for key.
func (r *Registry) Execute(ctx context.Context, sh *Shell, key string, args []string) error {
	cmd, ok := r.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}
	return cmd.Run(ctx, sh, args)
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Count() int {
	return len(r.commands)
}
