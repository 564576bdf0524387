// Package commands implements the mdpublish command line.
package commands

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdpublish/internal/article"
	"git.home.luguber.info/inful/mdpublish/internal/config"
	"git.home.luguber.info/inful/mdpublish/internal/devto"
	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpublish/internal/logfields"
	"git.home.luguber.info/inful/mdpublish/internal/publish"
	"git.home.luguber.info/inful/mdpublish/internal/version"
)

// UsageLine is printed on stdout when the arguments are wrong.
const UsageLine = "Usage: " + version.Name + " <path_to_markdown_file>"

// Streams are the process output streams.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Execute runs one invocation and returns the process exit code.
func Execute(args []string, streams Streams, lookup config.LookupFunc) int {
	cli := &CLI{stderr: streams.Stderr}

	exited := false
	exitCode := 0
	parser, err := kong.New(cli,
		kong.Name(version.Name),
		kong.Description("Convert a markdown file with front matter into a dev.to article payload."),
		kong.Writers(streams.Stdout, streams.Stderr),
		kong.Vars{"version": version.Version},
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
	)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Report(streams.Stderr, errors.InternalError("failed to build command line parser").WithCause(err).Build())
	}

	_, err = parser.Parse(args)
	if exited {
		// --help or --version already wrote their output.
		return exitCode
	}
	if err == nil && len(cli.Paths) != 1 {
		err = fmt.Errorf("expected exactly one markdown file, got %d", len(cli.Paths))
	}
	if err != nil {
		return reportUsage(streams, cli.Logger(), err)
	}

	return run(context.Background(), cli, streams, lookup)
}

// reportUsage prints the fixed usage line on stdout. The parse failure is
// only logged at debug level.
func reportUsage(streams Streams, logger *slog.Logger, cause error) int {
	usageErr := errors.UsageError(UsageLine).WithCause(cause).Build()
	logger.Debug("Invalid arguments", logfields.Error(usageErr.Cause()))
	_, _ = fmt.Fprintln(streams.Stdout, usageErr.Message())
	return errors.NewCLIErrorAdapter(false, logger).ExitCodeFor(usageErr)
}

func run(ctx context.Context, cli *CLI, streams Streams, lookup config.LookupFunc) int {
	logger := cli.Logger()
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, logger)

	cfg, err := config.Resolve(lookup, config.ResolveOptions{EnvFile: cli.EnvFile, APIURL: cli.APIURL})
	if stderrors.Is(err, config.ErrMissingAPIKey) {
		_, _ = fmt.Fprintln(streams.Stderr, config.MissingAPIKeyMessage)
		return errors.ExitFailure
	} else if err != nil {
		return adapter.Report(streams.Stderr, err)
	}
	if cfg.EnvFile != "" {
		logger.Debug("Loaded environment file", logfields.Path(cfg.EnvFile))
	}

	client, err := devto.NewClient(devto.Options{
		BaseURL:   cfg.APIURL,
		APIKey:    cfg.APIKey,
		UserAgent: version.UserAgent(),
	})
	if err != nil {
		return adapter.Report(streams.Stderr, err)
	}

	code := 0
	publish.New(client, logger).Prepare(ctx, cli.Paths[0]).Match(
		func(env article.Envelope) { code = writeEnvelope(streams, adapter, env) },
		func(err error) { code = adapter.Report(streams.Stderr, err) },
	)
	return code
}

// writeEnvelope encodes fully before writing so a failure leaves stdout empty.
func writeEnvelope(streams Streams, adapter *errors.CLIErrorAdapter, env article.Envelope) int {
	var buf bytes.Buffer
	if err := env.Encode(&buf); err != nil {
		return adapter.Report(streams.Stderr, errors.InternalError("failed to encode article payload").WithCause(err).Build())
	}
	if _, err := streams.Stdout.Write(buf.Bytes()); err != nil {
		return adapter.Report(streams.Stderr, errors.FileSystemError("failed to write output").WithCause(err).Build())
	}
	return 0
}
