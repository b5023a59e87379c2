package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/session"
	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/tags"
	"github.com/ivlev/datasettag/internal/thumbnail"
	"github.com/ivlev/datasettag/internal/view"
)

var errUsage = errors.New("usage")

// Options wires a shell to its collaborators.
type Options struct {
	Source  *source.ImageSource
	Session *session.Session
	View    *view.Renderer
	Out     io.Writer
	Logger  *zap.Logger

	// Thumbs builds previews for the preview command. It lives as long as
	// the shell so repeated previews are served from its cache.
	Thumbs   *thumbnail.Generator
	ThumbDir string // default <dir>/thumbs

	// PersistCatalog is called after every catalog change.
	PersistCatalog func(map[tags.Category][]string) error
}

// Shell is the interactive tagging loop over one image directory.
type Shell struct {
	src      *source.ImageSource
	sess     *session.Session
	view     *view.Renderer
	out      io.Writer
	logger   *zap.Logger
	thumbs   *thumbnail.Generator
	thumbDir string
	persist  func(map[tags.Category][]string) error
	registry *Registry
	rest     string // current line after the command word, unsplit
	done     bool
}

func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	renderer := opts.View
	if renderer == nil {
		renderer = view.New(out, true)
	}
	thumbs := opts.Thumbs
	if thumbs == nil {
		thumbs = thumbnail.New(0, 1, logger)
	}
	thumbDir := opts.ThumbDir
	if thumbDir == "" {
		thumbDir = filepath.Join(opts.Source.Dir(), "thumbs")
	}
	sh := &Shell{
		src:      opts.Source,
		sess:     opts.Session,
		view:     renderer,
		out:      out,
		logger:   logger,
		thumbs:   thumbs,
		thumbDir: thumbDir,
		persist:  opts.PersistCatalog,
		registry: NewRegistry(),
	}
	registerCommands(sh.registry)
	return sh
}

func (sh *Shell) Registry() *Registry {
	return sh.registry
}

// Run reads commands line by line until quit, EOF or cancellation. Command
// errors are reported and the loop continues.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	// A blocked read on a terminal cannot be interrupted; the reader is
	// abandoned on cancellation and exits with the process.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	sh.printf("[*] %d images in %s, type 'help' for commands\n", sh.src.Count(), sh.src.Dir())
	for !sh.done {
		sh.printf("> ")
		select {
		case <-ctx.Done():
			sh.println("")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if err := sh.Exec(ctx, line); err != nil {
				sh.printf("[-] %v\n", err)
			}
		}
	}
	return nil
}

// Exec runs a single command line.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	sh.rest = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	sh.logger.Debug("command", zap.String("line", line))
	err := sh.registry.Execute(ctx, sh, fields[0], fields[1:])
	if errors.Is(err, errUsage) {
		if cmd, ok := sh.registry.Lookup(fields[0]); ok {
			return fmt.Errorf("usage: %s", cmd.Usage)
		}
	}
	return err
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}
