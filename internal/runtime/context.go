// Package runtime provides application runtime context for duetrack.
package runtime

import (
	"github.com/duetrack/duetrack/internal/config"
	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/storage"
)

// Context holds the application runtime context: the selected storage
// backend behind the shared repository handle, plus the output formatters.
type Context struct {
	Repo      storage.Repo
	Formatter *output.Formatter
	CLI       *output.CLIFormatter
	JSON      *output.JSONFormatter

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	Config    config.Config
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// New creates a new runtime context, opening the configured backend once.
// Callers share the returned handle; one Context owns one storage location.
func New(opts Options) (*Context, error) {
	repo, err := storage.Open(storage.Options{
		Dir:    opts.Config.DataDir,
		Driver: opts.Config.Driver,
	})
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("open storage", "could not open storage", err)
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Repo:      repo,
		Formatter: formatter,
		CLI:       output.NewCLIFormatter(formatter),
		JSON:      output.NewJSONFormatter(formatter),
		Debug:     opts.Debug,
	}, nil
}

// Close releases backend resources for backends that hold any.
func (c *Context) Close() error {
	if closer, ok := c.Repo.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
