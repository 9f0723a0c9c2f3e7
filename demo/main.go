// Binary demo runs a small interactive key echo on the local
// terminal. Keys are decoded and printed as they arrive; q or ctrl+c
// quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/termloom/termloom/driver"
	"github.com/termloom/termloom/keys"
	"github.com/termloom/termloom/logging"
)

var (
	debug   = flag.Bool("debug", false, "If true, enable DEBUG log level for verbose log output")
	fps     = flag.Int("fps", 30, "Input poll frequency in frames per second")
	logfile = flag.String("logfile", "", "If set, logs will be written to this file.")
)

func main() {
	flag.Parse()

	if err := logging.Setup(*logfile, *debug); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	d := driver.NewTerm(os.Stdin, os.Stdout)
	if err := d.Init(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer func() {
		if err := d.Cleanup(); err != nil {
			slog.Error("couldn't clean up terminal", "err", err)
		}
	}()

	cols, rows := d.Size()
	fmt.Fprintf(d, "%dx%d terminal; press keys, q or ctrl+c to quit\r\n", cols, rows)

	tick := time.NewTicker(time.Second / time.Duration(*fps))
	defer tick.Stop()

	for range tick.C {
		// Size can change between frames on a real terminal.
		if c, r := d.Size(); c != cols || r != rows {
			cols, rows = c, r
			fmt.Fprintf(d, "resized to %dx%d\r\n", cols, rows)
		}

		for {
			k, ok := d.ReadInput()
			if !ok {
				break
			}

			switch k {
			case "q", keys.CtrlKey('C'):
				return
			default:
				fmt.Fprintf(d, "%s\r\n", k)
			}
		}
	}
}
