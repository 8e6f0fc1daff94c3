// Command aquawatchctl runs water quality predictions and assessments from the
// command line using the same model artifacts and station catalog as the API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/inference"
)

// Version is set at compile time via ldflags.
var Version = "dev"

// CLI is the aquawatchctl command grammar.
type CLI struct {
	LogLevel string           `name:"log-level" env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level for diagnostics on stderr."`
	Catalog  string           `name:"stations-path" env:"STATIONS_PATH" help:"Station catalog JSON. Defaults to the embedded catalog."`
	Model    modelFlags       `embed:"" prefix:"model-"`
	Version  kong.VersionFlag `help:"Print version and exit."`

	Predict    PredictCmd    `cmd:"" help:"Predict pollutant levels for a station and year."`
	Assess     AssessCmd     `cmd:"" help:"Score measured pollutant values."`
	Stations   StationsCmd   `cmd:"" help:"List monitoring stations."`
	CheckModel CheckModelCmd `cmd:"" name:"check-model" help:"Verify the model artifacts against the station catalog."`
}

type modelFlags struct {
	Kind    string        `env:"MODEL_KIND" default:"linear" enum:"linear,remote" help:"Model implementation (${enum})."`
	Path    string        `env:"MODEL_PATH" default:"pollution_model.json" help:"Linear model artifact."`
	Columns string        `env:"MODEL_COLUMNS_PATH" default:"model_columns.json" help:"Trained column list."`
	URL     string        `name:"server-url" env:"MODEL_SERVER_URL" help:"Model server base URL for the remote kind."`
	Timeout time.Duration `env:"MODEL_TIMEOUT" default:"10s" help:"Remote model call timeout."`
}

// app carries what every command needs once flags are parsed.
type app struct {
	out    io.Writer
	logger zerolog.Logger
	cli    *CLI
}

func (a *app) catalog() (*geography.Catalog, error) {
	return geography.Load(a.cli.Catalog)
}

func (a *app) predictor() (inference.Predictor, error) {
	m := a.cli.Model
	return inference.Load(inference.Config{
		Kind:        inference.Kind(m.Kind),
		ModelPath:   m.Path,
		ColumnsPath: m.Columns,
		ServerURL:   m.URL,
		Timeout:     m.Timeout,
		Logger:      a.logger,
	})
}

func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("aquawatchctl"),
		kong.Description("Water quality prediction and assessment for monitoring stations."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"version": Version},
	)
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr, os.Exit)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return ctx.Run(&app{out: stdout, logger: logger, cli: &cli})
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "aquawatchctl: %v\n", err)
		os.Exit(1)
	}
}
