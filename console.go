package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go-midikeys/binding"
	"go-midikeys/debug"
)

// quitLine is the console line that ends the run (exact, case-sensitive)
const quitLine = "Q"

// consoleReporter prints learning progress the way an operator follows it
// at the terminal. Dispatches are only traced to the debug log.
func consoleReporter(w io.Writer) binding.Reporter {
	return binding.ReporterFunc(func(ev binding.Event) {
		switch ev.Kind {
		case binding.EventLearned:
			fmt.Fprintln(w, ev)
			if prompt := ev.Prompt(); prompt != "" {
				fmt.Fprintln(w, prompt)
				return
			}
			fmt.Fprintln(w, "All keys learned")
			for _, r := range ev.Table.Shadowed() {
				fmt.Fprintf(w, "Warning: %s shares a key with an earlier role and will never fire\n", r)
			}
		case binding.EventDispatched:
			debug.Log("console", "%s", ev)
		case binding.EventActionFailed:
			fmt.Fprintf(w, "Error: %s\n", ev)
		}
	})
}

// waitForQuit blocks until quitLine is read from r or ctx is done. After
// EOF on r only ctx can end the wait.
func waitForQuit(ctx context.Context, r *bufio.Reader, w io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				debug.Log("console", "stdin closed: %v", err)
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "Closing connection")
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if line == quitLine {
				fmt.Fprintf(w, "Closing connection: %s\n", line)
				return nil
			}
		}
	}
}
