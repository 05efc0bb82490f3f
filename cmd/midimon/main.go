package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-midikeys/midi"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code. The driver
// is closed before it returns.
func run(args []string) int {
	if len(args) < 1 {
		usage()
		return 0
	}

	defer gomidi.CloseDriver()

	var err error
	switch args[0] {
	case "list":
		err = listPorts()
	case "monitor":
		preset := ""
		if len(args) > 1 {
			preset = args[1]
		}
		err = monitor(preset)
	default:
		usage()
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Println("MIDI Monitor")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list             - List MIDI input ports")
	fmt.Println("  monitor [port]   - Print incoming messages and their key-codes")
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, err := midi.ListInPorts(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	return nil
}

func monitor(preset string) error {
	ins, err := midi.ListInPorts(3 * time.Second)
	if err != nil {
		return err
	}

	stdin := bufio.NewReader(os.Stdin)
	port, err := midi.SelectPort(ins, preset, stdin, os.Stdout)
	if err != nil {
		return err
	}

	sess, err := midi.Connect(port, printMessage)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Printf("Listening on '%s'. Type Q and press Enter to stop.\n", sess.Name())
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if scanner.Text() == "Q" {
			break
		}
	}
	return nil
}

func printMessage(timestampms int32, raw []byte) {
	code := "-"
	if len(raw) >= 2 {
		code = fmt.Sprint(raw[1])
	}
	release := ""
	if midi.IsRelease(raw, true) {
		release = " (release)"
	}
	fmt.Printf("%8d  % X  key-code %s  %s%s\n", timestampms, raw, code, gomidi.Message(raw).String(), release)
}
