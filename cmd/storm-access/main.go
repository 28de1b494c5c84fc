package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/appengine-ltd/storm-access/internal/adapters"
	"github.com/appengine-ltd/storm-access/internal/config"
	"github.com/appengine-ltd/storm-access/internal/console"
	"github.com/appengine-ltd/storm-access/internal/controller"
	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/hostsim"
	"github.com/appengine-ltd/storm-access/internal/nav"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
	"github.com/appengine-ltd/storm-access/internal/speech"
	"github.com/appengine-ltd/storm-access/internal/ui"
	"github.com/appengine-ltd/storm-access/internal/worldmap"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Storm Access %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	keymap, err := cfg.Keymap()
	if err != nil {
		return err
	}

	// The in-memory host stands in for the game process; the engine only
	// ever sees it through the assembly registry and the node interfaces.
	asm := reflectcache.NewAssembly(log)
	hostsim.RegisterTypes(asm)
	cache := reflectcache.NewCache(asm, log)
	acc := reflectcache.NewAccessor(log)
	world := hostsim.NewWorld(hostsim.DefaultScenario())

	hints := discovery.DefaultHints()
	disc := discovery.New(cache, acc, hints, log)
	transcript := speech.NewTranscript(cfg.TranscriptLimit)
	ann := speech.NewAnnouncer(transcript, cfg.SpeechOptions(), log)
	machine := nav.NewMachine(disc, cache, acc, ann, hints, log)
	mapNav := worldmap.NewNavigator(world, cache, acc, log)

	ad := controller.Adapters{
		Trade:     adapters.NewTrade(world, cache, acc, log),
		Tutorials: adapters.NewTutorials(world, cache, acc, log),
		Score:     adapters.NewScore(world, cache, acc, log),
		Capital:   adapters.NewCapital(world, cache, acc, log),
		Perks:     adapters.NewPerks(world, cache, acc, log),
		Wildcards: adapters.NewWildcards(world, cache, acc, log),
		Events:    adapters.NewEvents(world, cache, acc, log),
		State:     adapters.NewState(world, cache, acc, log),
	}
	ctrl := controller.New(machine, mapNav, ann, keymap, ad, cfg.PollTicks, log)

	cons := console.New()
	ui.NewHarness(ctrl, world, ad).RegisterCommands(cons)

	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
	}, ui.Deps{
		Controller: ctrl,
		Machine:    machine,
		Console:    cons,
		Transcript: transcript,
	})
	return app.Run()
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { _ = f.Close() }, nil
}
