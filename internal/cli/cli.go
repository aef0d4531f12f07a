package cli

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/vk/nitpickgo/internal/app"
)

// Exit codes.
const (
	ExitViolations = 1
	ExitUsage      = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type arguments struct {
	Files []string `arg:"" optional:"" name:"file" help:"Files under inspection. Defaults to the primary file of the project in the current directory."`

	Root         string        `help:"Project root directory. Skips root discovery." env:"NITPICK_ROOT"`
	CacheDir     string        `help:"Cache directory, relative to the current directory." default:".cache/nitpick" env:"NITPICK_CACHE_DIR"`
	NoCache      bool          `help:"Keep resolved paths in memory only." env:"NITPICK_NO_CACHE"`
	FetchTimeout time.Duration `help:"Timeout for fetching a remote style." default:"10s" env:"NITPICK_FETCH_TIMEOUT"`
	LogLevel     string        `help:"Set the logging level." enum:"debug,info,warn,error" default:"info" env:"NITPICK_LOG_LEVEL"`
	LogFormat    string        `help:"Log output format." enum:"text,json" default:"text" env:"NITPICK_LOG_FORMAT"`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		parsed arguments
		exited bool
	)
	parser, err := kong.New(&parsed,
		kong.Name("nitpick"),
		kong.Description("Enforces a shared configuration style across Python projects."),
		kong.Writers(output, output),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	_, err = parser.Parse(args)
	if exited {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "files", len(parsed.Files))

	config, err := app.NewConfig(app.Config{
		Files:        parsed.Files,
		Root:         parsed.Root,
		CacheDir:     parsed.CacheDir,
		NoCache:      parsed.NoCache,
		FetchTimeout: parsed.FetchTimeout,
		LogLevel:     strings.ToLower(parsed.LogLevel),
		LogFormat:    strings.ToLower(parsed.LogFormat),
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
