package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Repository overrides the CSV repository. Set before calling Run() in tests.
	Repository core.Repository
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pokedex"),
		kong.Description("Query the Pokémon dataset from the command line"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pokedex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Repo = m.Repository
	if deps.Repo == nil {
		repo := core.NewCSVRepository(cli.Data, core.LoaderOptions{
			ValidateStats: !cli.NoValidateStats,
			Logger:        logging.New(stderr, cli.LogLevel, "text"),
		})
		if err := repo.Init(ctx); err != nil {
			fmt.Fprintf(stderr, "Hint: Set POKEMON_DATA_PATH or pass --data to use a different file\n")
			return fmt.Errorf("%s: %w", core.FormatUserError(err), err)
		}
		deps.Repo = repo
	}

	return kongCtx.Run(deps)
}
