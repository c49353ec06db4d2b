package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/jcorbin/robotforth/internal/logio"
)

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli, kongOptions()...)

	log := logio.NewLogger(os.Stderr)
	app, err := newApp(cli.Globals, log, os.Stdout)
	if err == nil {
		err = ctx.Run(app)
	}
	log.ErrorIf(err)
	os.Exit(log.ExitCode())
}
