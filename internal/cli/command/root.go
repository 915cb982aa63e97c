package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/cli/config"
	"github.com/dioritemc/diorite-go/internal/cli/connection"
	"github.com/dioritemc/diorite-go/internal/cli/output"
	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/palette"
	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/internal/infra/tlsroots"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
)

const metaConfig = "config"

// Source resolves materials. *service.LookupService and
// *connection.Client both implement it.
type Source interface {
	Get(ctx context.Context, q domain.Query) (domain.MaterialRecord, error)
	List(ctx context.Context, f domain.Filter) (domain.Page, error)
	Variants(ctx context.Context, ref string) ([]domain.MaterialRecord, error)
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "diorite-cli",
		Usage:                "Inspect the Minecraft 1.8 material registry",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			LookupCommand(),
			ListCommand(),
			VariantsCommand(),
			ExportCommand(),
			SnapshotCommand(),
			VersionCommand(),
			ShellCommand(),
		},
		Before: before,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.diorite/cli.yaml)",
			EnvVars: []string{"DIORITE_CLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "diorite-server address; empty uses the built-in registry",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "Extra CA certificates (PEM file or directory) for an https server",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log diagnostics to stderr",
		},
	}
}

// before loads the config file and applies flag overrides.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("server") {
		cfg.Server = c.String("server")
	}
	if c.IsSet("ca-file") {
		cfg.CAFile = c.String("ca-file")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("wide") {
		cfg.Wide = c.Bool("wide")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Verify(); err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg
	return nil
}

// Config returns the effective configuration.
func Config(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// SourceFor returns the remote client when a server is configured and the
// local lookup service otherwise.
func SourceFor(c *cli.Context) (Source, error) {
	cfg := Config(c)
	if cfg.Server == "" {
		return service.NewLookupService(palette.New(), nil), nil
	}
	var opts []connection.ClientOption
	if cfg.CAFile != "" {
		pool, err := tlsroots.LoadPool(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, connection.WithTLSConfig(pool.ClientConfig()))
	}
	Logger(c).Debug("using remote registry", "server", cfg.Server)
	return connection.NewClient(cfg.Server, opts...), nil
}

// Logger returns a text logger on stderr at the configured level.
func Logger(c *cli.Context) logger.Logger {
	l, err := logger.New(logger.Config{
		Level:  Config(c).LogLevel,
		Format: "text",
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return logger.Default()
	}
	return l
}

func printer(c *cli.Context) output.Formatter {
	cfg := Config(c)
	return output.NewFormatter(output.Format(cfg.Output), cfg.Wide)
}

func isTable(c *cli.Context) bool {
	return Config(c).Output == string(output.FormatTable)
}

func stdout(c *cli.Context) io.Writer { return c.App.Writer }

// PrintError prints an error line to stderr.
func PrintError(c *cli.Context, format string, args ...any) {
	fmt.Fprintf(c.App.ErrWriter, "error: "+format+"\n", args...)
}
