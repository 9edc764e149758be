package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"dailytodo/internal/app"
	"dailytodo/internal/cli"
	"dailytodo/internal/config"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		return 1
	}
	defer a.Close()

	shell := cli.NewShell(a.Controller(), os.Stdout)

	completions := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range shell.Names() {
		completions = append(completions, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "todo> ",
		HistoryFile:     filepath.Join(config.DefaultDataDir(), "history"),
		AutoComplete:    readline.NewPrefixCompleter(completions...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open terminal:", err)
		return 1
	}
	defer rl.Close()

	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	shell.Execute(ctx, "list")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return 0
			}
			continue
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			return 1
		}
		if shell.Execute(ctx, line) {
			return 0
		}
	}
}
