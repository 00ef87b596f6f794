package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNoOpener is returned when no command could open a URL
var ErrNoOpener = errors.New("no command available to open URLs")

// Opener opens product links (images) in an external viewer
type Opener struct {
	command string   // configured command, empty for auto-detect
	args    []string // additional arguments for the command
	logger  *slog.Logger

	// starts the process; swapped in tests
	start func(name string, args ...string) error
	// lookPath resolves a command in PATH; swapped in tests
	lookPath func(file string) (string, error)
}

// openPath is one way to open a URL on a platform
type openPath struct {
	command string
	args    []string // inserted before the URL
}

// candidateOpeners defines the preferred order for each platform.
// The last entry is the system default handler.
var candidateOpeners = map[string][]openPath{
	"darwin": {
		{command: "open"},
	},
	"linux": {
		{command: "wslview"},
		{command: "sensible-browser"},
		{command: "xdg-open"},
	},
	"windows": {
		{command: "cmd", args: []string{"/c", "start", ""}},
	},
}

// NewOpener creates an Opener. An empty command auto-detects per platform.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		logger:  logger,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // async, don't wait
		},
		lookPath: exec.LookPath,
	}
}

// Open opens rawURL. Only http and https links are accepted.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	// Tier 1: configured command
	if o.command != "" {
		args := append(append([]string{}, o.args...), rawURL)
		o.logger.Info("opening with configured command", "command", o.command, "url", rawURL)
		return o.start(o.command, args...)
	}

	// Tier 2: platform candidates, in order
	candidates, ok := candidateOpeners[runtime.GOOS]
	if !ok {
		candidates = candidateOpeners["linux"] // default
	}
	for _, c := range candidates {
		if _, err := o.lookPath(c.command); err != nil {
			o.logger.Debug("opener not available", "command", c.command, "error", err)
			continue
		}
		args := append(append([]string{}, c.args...), rawURL)
		if err := o.start(c.command, args...); err != nil {
			o.logger.Debug("opener failed", "command", c.command, "error", err)
			continue
		}
		o.logger.Info("opened url", "command", c.command, "url", rawURL)
		return nil
	}

	return ErrNoOpener
}
