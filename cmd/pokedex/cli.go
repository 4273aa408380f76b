package main

import (
	"context"
	"io"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Repo   core.Repository
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Data            string `short:"d" env:"POKEMON_DATA_PATH" default:"data/pokemon.csv" help:"Path to the Pokémon CSV"`
	NoValidateStats bool   `help:"Accept base stats outside 1-255"`
	LogLevel        string `env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level for load diagnostics"`

	List  ListCmd  `cmd:"" help:"List Pokémon with search, filter, sort and paging"`
	Show  ShowCmd  `cmd:"" help:"Show one Pokémon and its most similar peers"`
	Stats StatsCmd `cmd:"" help:"Show average base stats"`
	Info  InfoCmd  `cmd:"" help:"Show the loaded snapshot"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Query     string `short:"q" help:"Case-insensitive name search"`
	Legendary string `short:"l" help:"Filter by legendary flag (true/false, yes/no, 1/0)"`
	Sort      string `short:"s" help:"Sort keys, e.g. bst:desc,name"`
	Page      int    `short:"p" default:"1" help:"Page number"`
	PageSize  int    `name:"page-size" default:"50" help:"Rows per page (1-200)"`
	JSON      bool   `help:"Print JSON instead of a table"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   int     `arg:"" help:"Pokédex number"`
	K    float64 `short:"k" default:"5" help:"Number of similar Pokémon (0-50)"`
	JSON bool    `help:"Print JSON instead of text"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	ByType             bool `help:"Group averages by type"`
	ExcludeLegendaries bool `help:"Leave legendary Pokémon out"`
	JSON               bool `help:"Print JSON instead of a table"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}
