package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-looper/looper"
	"go-looper/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	arg := func(i int) string {
		if len(os.Args) > i {
			return os.Args[i]
		}
		return ""
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "monitor":
		err = monitor(arg(2))
	case "play":
		err = play(arg(2))
	case "instruments":
		for _, f := range midi.InstrumentFamilies() {
			fmt.Println(f)
		}
	default:
		usage()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                - List all MIDI ports")
	fmt.Println("  monitor [input]     - Print decoded note events")
	fmt.Println("  play [output]       - Play a note, then each drum pad")
	fmt.Println("  instruments         - List General MIDI instrument families")
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ports, err := midi.Scan()
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	for i, name := range ports.InNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range ports.OutNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	return nil
}

func monitor(name string) error {
	ports, err := midi.Scan()
	if err != nil {
		return err
	}
	port, err := ports.FindIn(name)
	if err != nil {
		return err
	}

	clock := looper.NewClock()
	in, err := midi.NewInput(port, clock.Now)
	if err != nil {
		return err
	}
	defer in.Close()

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.Name())
	drums := looper.NewDrumMap(looper.GetKit(looper.DefaultKit))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			return nil
		case <-ticker.C:
			for _, raw := range in.Read(32) {
				ev, err := midi.Decode(raw)
				if err != nil {
					fmt.Printf("  %v\n", err)
					continue
				}
				out := drums.Transform(ev, true)
				fmt.Printf("  %s  -> note=%d ch=%d\n", ev, out.Note, out.Channel)
			}
		}
	}
}

func play(name string) error {
	ports, err := midi.Scan()
	if err != nil {
		return err
	}
	port, err := ports.FindOut(name)
	if err != nil {
		return err
	}
	out, err := midi.NewOutput(port)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Using output: %s\n", out.Name())
	if err := out.SetInstrument(0); err != nil {
		return err
	}

	fmt.Println("Middle C...")
	out.NoteOn(60, 100, 0)
	time.Sleep(500 * time.Millisecond)
	out.NoteOff(60, 0, 0)

	kit := looper.NewDrumMap(looper.GetKit(looper.DefaultKit))
	for pad := looper.PadLow; pad <= looper.PadHigh; pad++ {
		note, _ := kit.Lookup(pad)
		fmt.Printf("Pad %d -> drum %d\n", pad, note)
		out.NoteOn(note, 100, midi.PercussionChannel)
		time.Sleep(250 * time.Millisecond)
		out.NoteOff(note, 0, midi.PercussionChannel)
	}

	fmt.Println("Done!")
	return nil
}
