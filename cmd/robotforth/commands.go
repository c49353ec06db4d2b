package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jcorbin/robotforth"
	"github.com/jcorbin/robotforth/internal/arena"
	"github.com/jcorbin/robotforth/internal/scriptload"
)

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func (cmd *CheckCmd) Run(a *app) error {
	names := cmd.Scripts
	if len(names) == 0 {
		var err error
		if names, err = a.loader.Names(); err != nil {
			return err
		}
	}
	for _, name := range names {
		prog, err := a.Load(name)
		if err != nil {
			fmt.Fprintf(a.out, "%v %v\n", failLabel("FAIL"), name)
			a.log.Errorf("%v", err)
			continue
		}
		fmt.Fprintf(a.out, "%v %v (%d words)\n", okLabel("OK"), name, len(prog.Words()))
	}
	return nil
}

func (cmd *DumpCmd) Run(a *app) error {
	prog, err := a.Load(cmd.Script)
	if err != nil {
		return err
	}
	return robotforth.Dump(a.out, prog)
}

func (cmd *RunCmd) Run(a *app) error {
	sc := &arena.Scenario{
		Name:  cmd.Script,
		Turns: cmd.Turns,
		Agents: []arena.AgentSpec{{
			Name:   "solo",
			Script: cmd.Script,
			Team:   cmd.Team,
			Kind:   cmd.Kind,
		}},
	}
	if err := sc.Normalize(); err != nil {
		return err
	}
	ar, err := arena.New(sc, a, a.traceLogf())
	if err != nil {
		return err
	}
	if err := ar.Run(context.Background()); err != nil {
		return err
	}

	ag := ar.Agent("solo")
	for _, ev := range ag.Events() {
		fmt.Fprintln(a.out, ev)
	}
	for _, fault := range ag.Faults() {
		a.log.Errorf("%v", fault)
	}
	if cmd.State {
		return robotforth.DumpState(a.out, ag.Instance().State())
	}
	return nil
}

func (cmd *WordsCmd) Run(a *app) error {
	dict := a.loader.Builder().Dictionary()
	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Word", "Group", "Effect"})
	table.SetAutoWrapText(false)
	n := 0
	for _, name := range dict.Names() {
		b, _ := dict.Lookup(name)
		if cmd.Group != "" && b.Group != cmd.Group {
			continue
		}
		table.Append([]string{b.Name, b.Group, b.Effect})
		n++
	}
	if n == 0 {
		return fmt.Errorf("no words in group %q", cmd.Group)
	}
	table.Render()
	return nil
}

func (cmd *ArenaCmd) Run(a *app) error {
	sc, err := arena.LoadScenario(cmd.Scenario)
	if err != nil {
		return err
	}
	if cmd.Turns > 0 {
		sc.Turns = cmd.Turns
	}
	ar, err := arena.New(sc, a, a.log.Leveledf("ARENA"))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := ar.Run(ctx); err != nil {
		return err
	}

	if cmd.Events {
		for _, ag := range ar.Agents() {
			for _, ev := range ag.Events() {
				fmt.Fprintf(a.out, "%v: %v\n", ag.Name(), ev)
			}
		}
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Agent", "Team", "Kind", "Script", "Runs", "Faults", "Events", "Pending", "Last Fault"})
	table.SetAutoWrapText(false)
	for _, sum := range ar.Summaries() {
		last := ""
		if sum.LastFault != nil {
			last = sum.LastFault.Error()
		}
		table.Append([]string{
			sum.Name, sum.Team, sum.Kind, sum.Script,
			strconv.Itoa(sum.Runs),
			strconv.Itoa(sum.Faults),
			strconv.Itoa(sum.Events),
			strconv.Itoa(sum.Pending),
			last,
		})
	}
	table.Render()
	return nil
}

func (cmd *WatchCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a.log.Printf("INFO", "watching %v", a.cfg.Scripts.Dir)
	err := a.loader.Watch(ctx, func(name string, prog *robotforth.Program, err error) {
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(a.out, "removed %v\n", name)
		case err != nil:
			fmt.Fprintf(a.out, "%v %v\n", failLabel("FAIL"), name)
			a.log.Printf("ERROR", "%v", err)
		default:
			fmt.Fprintf(a.out, "%v %v (%d words)\n", okLabel("OK"), name, len(prog.Words()))
		}
	})
	if errors.Is(err, scriptload.ErrNotWatchable) {
		return errors.New("watch needs a script directory, set --scripts")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) traceLogf() func(mess string, args ...interface{}) {
	if !a.cfg.Log.Trace {
		return nil
	}
	return a.log.Leveledf("ARENA")
}
