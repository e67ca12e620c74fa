package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"yachtdice/internal/app"
	"yachtdice/internal/config"
	"yachtdice/internal/domain"
	"yachtdice/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "yacht: %v\n", err)
		os.Exit(2)
	}

	fs := flag.NewFlagSet("yacht", flag.ExitOnError)
	players := fs.String("players", strings.Join(cfg.Players, ","), "comma separated player names (2-4)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dice seed; 0 seeds from the clock")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log debug output to stderr")
	_ = fs.Parse(os.Args[1:])
	cfg.Players = splitNames(*players)

	logger := logging.New(os.Stderr, cfg.Verbose)
	svc := app.NewService(diceSource(cfg.Seed), logger)

	if err := newShell(svc, os.Stdin, os.Stdout).run(cfg.Players); err != nil {
		if errors.Is(err, errInputClosed) {
			return
		}
		logger.Error("yacht: %v", err)
		os.Exit(1)
	}
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func diceSource(seed int64) domain.Source {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
