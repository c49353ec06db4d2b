package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcorbin/robotforth"
	"github.com/jcorbin/robotforth/internal/config"
	"github.com/jcorbin/robotforth/internal/logio"
	"github.com/jcorbin/robotforth/internal/scriptload"
)

// app carries what every command needs: settings, the script loader, and
// where to report.
type app struct {
	log    *logio.Logger
	out    io.Writer
	cfg    *config.Config
	loader *scriptload.Loader
}

func newApp(g Globals, log *logio.Logger, out io.Writer) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	if cfg.Log.Print {
		opts = append(opts, robotforth.WithOutput(&logio.Writer{Logf: log.Leveledf("PRINT")}))
	} else {
		opts = append(opts, robotforth.WithOutput(out))
	}
	if cfg.Log.Trace {
		opts = append(opts, robotforth.WithLogf(log.Leveledf("TRACE")))
	}

	loader, err := scriptload.NewDir(cfg.Scripts.Dir, robotforth.NewBuilder(opts...), cfg.Scripts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open scripts: %w", err)
	}
	return &app{log: log, out: out, cfg: cfg, loader: loader}, nil
}

// loadConfig reads the config file, if any, then applies flag overrides.
func loadConfig(g Globals) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.Config != "" {
		cfg, err = config.LoadFile(g.Config)
	} else {
		cfg, err = config.LoadEnv()
	}
	if err != nil {
		return nil, err
	}
	if g.Scripts != "" {
		cfg.Scripts.Dir = g.Scripts
	}
	if g.Seed != 0 {
		cfg.Interpreter.Seed = g.Seed
	}
	cfg.Log.Trace = cfg.Log.Trace || g.Trace
	cfg.Log.Print = cfg.Log.Print || g.LogPrint
	return cfg, nil
}

// isScriptFile returns true if name refers to a file rather than a script in
// the loader.
func isScriptFile(name string) bool {
	return strings.HasSuffix(name, scriptload.Ext) || strings.ContainsAny(name, `/\`)
}

// Load compiles a script by loader name or file path.
func (a *app) Load(name string) (*robotforth.Program, error) {
	if !isScriptFile(name) {
		return a.loader.Load(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.loader.Builder().Build(name, f)
}
