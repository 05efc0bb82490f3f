package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-midikeys/binding"
	"go-midikeys/config"
	"go-midikeys/debug"
	"go-midikeys/keys"
	"go-midikeys/midi"
	"go-midikeys/theme"
	"go-midikeys/tui"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Debug {
		if err := debug.Enable(cfg.DebugLog); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	// Runs last, after the session below has released its port
	defer gomidi.CloseDriver()

	ports, err := midi.ListInPorts(cfg.PortTimeout)
	if err != nil {
		return err
	}
	if cfg.ListPorts {
		listPorts(ports)
		return nil
	}

	stdin := bufio.NewReader(os.Stdin)
	port, err := midi.SelectPort(ports, cfg.Port, stdin, os.Stdout)
	if err != nil {
		return err
	}

	inj, err := keys.Open(cfg.Backend, os.Stdout)
	if err != nil {
		return err
	}
	defer inj.Close()
	perf := keys.NewPerformer(inj, cfg.Bindings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TUI {
		return runTUI(ctx, cfg, port, perf)
	}
	return runConsole(ctx, cfg, port, perf, stdin)
}

func listPorts(ports []drivers.In) {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ports {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func runConsole(ctx context.Context, cfg *config.Config, port drivers.In, perf *keys.Performer, stdin *bufio.Reader) error {
	engine := binding.New(perf,
		binding.WithReporter(consoleReporter(os.Stdout)),
		binding.WithWideRelease(cfg.WideRelease),
	)

	fmt.Println("\nOpening connection")
	sess, err := midi.Connect(port, engine.Handle)
	if err != nil {
		return err
	}
	defer sess.Close()

	watcher := midi.NewWatcher(sess.Name())
	go watcher.Run(ctx)
	go func() {
		for ev := range watcher.Events() {
			fmt.Printf("Port '%s' %s\n", ev.Name, ev.Type)
		}
	}()

	fmt.Printf("Connection open, reading input from '%s' (type %s and press enter to exit) ...\n", sess.Name(), quitLine)
	fmt.Println("Press Key For " + binding.Format.Label())

	return waitForQuit(ctx, stdin, os.Stdout)
}

func runTUI(ctx context.Context, cfg *config.Config, port drivers.In, perf *keys.Performer) error {
	events := make(chan binding.Event, 32)
	engine := binding.New(perf,
		binding.WithReporter(tui.ChannelReporter(events)),
		binding.WithWideRelease(cfg.WideRelease),
	)

	sess, err := midi.Connect(port, engine.Handle)
	if err != nil {
		return err
	}
	defer sess.Close()

	watcher := midi.NewWatcher(sess.Name())
	go watcher.Run(ctx)

	m := tui.NewModel(sess.Name(), events, watcher.Events(), perf, theme.Default())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
