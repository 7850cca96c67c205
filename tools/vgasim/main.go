// Command vgasim runs the kernel text console against an in-memory grid on
// the host. It feeds its input to the console writer and then shows the
// resulting screen in the terminal, prints it as text or saves it as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"vgacons/device/video/console"

	"golang.org/x/term"
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[vgasim] error: %s\n", err.Error())
	os.Exit(1)
}

type options struct {
	width, height uint
	fg, bg        uint
	inFile        string
	pngFile       string
	dump          bool
}

func parseFlags(args []string) (*options, error) {
	var (
		opts options
		fs   = flag.NewFlagSet("vgasim", flag.ContinueOnError)
	)

	fs.UintVar(&opts.width, "width", uint(console.DefaultWidth), "console width in characters")
	fs.UintVar(&opts.height, "height", uint(console.DefaultHeight), "console height in characters")
	fs.UintVar(&opts.fg, "fg", uint(console.Yellow), "foreground color index (0-15)")
	fs.UintVar(&opts.bg, "bg", uint(console.Black), "background color index (0-15)")
	fs.StringVar(&opts.inFile, "in", "", "read console input from this file instead of stdin")
	fs.StringVar(&opts.pngFile, "png", "", "render the console to this PNG file")
	fs.BoolVar(&opts.dump, "dump", false, "print the console contents as text")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.fg > 15 || opts.bg > 15 {
		return nil, errors.New("color indices must be in the 0-15 range")
	}

	return &opts, nil
}

// simulate writes input to a fresh console and returns its handle.
func simulate(opts *options, input io.Reader) (*console.Handle, error) {
	width, height := uint32(opts.width), uint32(opts.height)
	grid, kerr := console.NewGrid(make([]uint16, width*height), width, height)
	if kerr != nil {
		return nil, kerr
	}

	cons := console.NewHandle(grid, console.NewAttribute(console.Color(opts.fg), console.Color(opts.bg)))
	cons.Do(func(w *console.Writer) { w.Clear() })

	if _, err := io.Copy(cons, input); err != nil {
		return nil, err
	}

	return cons, nil
}

func run(opts *options) error {
	var input io.Reader = os.Stdin
	if opts.inFile != "" {
		f, err := os.Open(opts.inFile)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	cons, err := simulate(opts, input)
	if err != nil {
		return err
	}

	w := cons.Acquire()
	defer cons.Release()

	switch {
	case opts.pngFile != "":
		f, err := os.Create(opts.pngFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return writePNG(f, w.Grid())
	case opts.dump || !term.IsTerminal(int(os.Stdout.Fd())):
		return dumpText(os.Stdout, w.Grid())
	default:
		return showInTerminal(w.Grid())
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		exit(err)
	}

	if err := run(opts); err != nil {
		exit(err)
	}
}
