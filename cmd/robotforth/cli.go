package main

import "github.com/alecthomas/kong"

// CLI defines the command line interface.
type CLI struct {
	Globals

	Check CheckCmd `cmd:"" help:"Compile scripts and report any errors"`
	Dump  DumpCmd  `cmd:"" help:"Print a compiled script's word trees"`
	Run   RunCmd   `cmd:"" help:"Run a script for some turns against a stand-in agent"`
	Words WordsCmd `cmd:"" help:"List the builtin words"`
	Arena ArenaCmd `cmd:"" help:"Run a YAML arena scenario"`
	Watch WatchCmd `cmd:"" help:"Recompile scripts as their files change"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" env:"ROBOTFORTH_CONFIG" help:"TOML config file path"`
	Scripts  string `short:"s" type:"path" env:"ROBOTFORTH_SCRIPTS" help:"Script directory (default: embedded scripts)"`
	Trace    bool   `help:"Enable interpreter trace logging"`
	Seed     uint64 `help:"Seed the random word (0 for a random seed)"`
	LogPrint bool   `help:"Route printed values through the log"`
}

// CheckCmd compiles scripts.
type CheckCmd struct {
	Scripts []string `arg:"" optional:"" help:"Script names or .fs files (default: every script)"`
}

// DumpCmd prints a compiled script.
type DumpCmd struct {
	Script string `arg:"" help:"Script name or .fs file"`
}

// RunCmd runs one script as a lone agent.
type RunCmd struct {
	Script string `arg:"" help:"Script name or .fs file"`
	Turns  int    `short:"n" default:"1" help:"Number of turns to run"`
	Team   string `default:"RED" help:"Agent team"`
	Kind   string `default:"TANK" help:"Agent kind"`
	State  bool   `help:"Print the interpreter state after the last turn"`
}

// WordsCmd lists builtins.
type WordsCmd struct {
	Group string `short:"g" help:"Only list words in this group"`
}

// ArenaCmd runs a scenario file.
type ArenaCmd struct {
	Scenario string `arg:"" type:"existingfile" help:"Scenario YAML file"`
	Turns    int    `short:"n" help:"Override the scenario's turn count"`
	Events   bool   `help:"Print every agent's events"`
}

// WatchCmd recompiles scripts on change.
type WatchCmd struct{}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("robotforth"),
		kong.Description("Compile, inspect, and run robot scripts."),
		kong.UsageOnError(),
	}
}
