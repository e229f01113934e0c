// Command ir-decode decodes infrared remote captures and encodes frames back
// to wire text.
//
// Usage:
//
//	ir-decode <command> [flags] [args]
//
// Commands:
//
//	decode       Decode captures (hex, JSON or pigpio text)
//	encode       Encode bit strings to wire text
//	reencode     Encode a CBOR capture record back to wire text
//	interactive  Start the interactive shell
//	save         Decode a capture and save it to the library
//	list         List saved captures
//	show         Show a saved capture
//	remove       Delete a saved capture
//
// Examples:
//
//	# Decode a capture file
//	ir-decode decode @daikin.hex
//
//	# Decode several files concurrently, as JSON
//	ir-decode decode -output json @a.hex @b.hex @c.json
//
//	# Decode stdin and keep the trace
//	ir-decode decode -trace decode.irlog - < capture.txt
//
//	# Encode a Sony power command
//	ir-decode encode -protocol sirc 1010100_10000
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/infrared-remote/ir-go/cmd/ir-decode/commands"
	"github.com/infrared-remote/ir-go/cmd/ir-decode/interactive"
	"github.com/infrared-remote/ir-go/pkg/capture"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/irtext"
	irlog "github.com/infrared-remote/ir-go/pkg/log"
)

const usage = `ir-decode - IR remote decoder and encoder

Usage:
  ir-decode <command> [flags] [args]

Commands:
  decode       Decode captures (hex, JSON or pigpio text)
  encode       Encode bit strings to wire text
  reencode     Encode a CBOR capture record back to wire text
  interactive  Start the interactive shell
  save         Decode a capture and save it to the library
  list         List saved captures
  show         Show a saved capture
  remove       Delete a saved capture

A capture argument is the capture text itself, @file to read a file, or -
to read stdin.

Use "ir-decode <command> -help" for more information about a command.
`

const defaultLibrary = "ir-library.json"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "decode":
		err = runDecode(args)
	case "encode":
		err = runEncode(args)
	case "reencode":
		err = runReencode(args)
	case "interactive", "shell":
		err = runInteractive(args)
	case "save":
		err = runSave(args)
	case "list":
		err = runList(args)
	case "show":
		err = runShow(args)
	case "remove":
		err = runRemove(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pipelineFlags are shared by every command that runs the pipeline.
type pipelineFlags struct {
	verbose bool
	trace   string
	workers int
}

func (p *pipelineFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&p.verbose, "v", false, "Enable debug logging on stderr")
	fs.StringVar(&p.trace, "trace", "", "File path for decode trace logging (CBOR format)")
	fs.IntVar(&p.workers, "workers", runtime.NumCPU(), "Concurrent decodes for multiple captures")
}

// pipeline holds the decoder and encoder built from pipelineFlags.
type pipeline struct {
	dec   *irremote.Decoder
	enc   *irremote.Encoder
	trace *irlog.FileLogger
}

func (p *pipeline) Close() {
	if p.trace != nil {
		p.trace.Close()
	}
}

func (p *pipelineFlags) build(logOut io.Writer) (*pipeline, error) {
	cfg := irremote.DefaultConfig()
	cfg.Workers = p.workers
	cfg.Logger = setupLogging(logOut, p.verbose)

	pl := &pipeline{}
	if p.trace != "" {
		fl, err := irlog.NewFileLogger(p.trace)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace logger: %w", err)
		}
		pl.trace = fl
		cfg.TraceLogger = fl
	}

	var err error
	if pl.dec, err = irremote.NewDecoder(cfg); err != nil {
		pl.Close()
		return nil, err
	}
	if pl.enc, err = irremote.NewEncoder(cfg); err != nil {
		pl.Close()
		return nil, err
	}
	return pl, nil
}

// setupLogging returns a debug text logger on w, or nil when not verbose.
func setupLogging(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newFlagSet(name, args, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "ir-decode %s - %s\n\nUsage:\n  ir-decode %s [flags] %s\n\nFlags:\n", name, summary, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func runDecode(args []string) error {
	fs := newFlagSet("decode", "<capture|@file|-> [...]", "Decode captures")
	format := fs.String("format", "auto", "Input format (auto, hex, json, pigpio)")
	output := fs.String("output", commands.OutputText, "Output format (text, json, cbor)")
	var pf pipelineFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("capture required")
	}

	f, err := irtext.ParseFormat(*format)
	if err != nil {
		return err
	}
	pl, err := pf.build(os.Stderr)
	if err != nil {
		return err
	}
	defer pl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := commands.DecodeOptions{Format: f, Output: *output}
	return commands.RunDecode(ctx, pl.dec, fs.Args(), opts, os.Stdin, os.Stdout)
}

func runEncode(args []string) error {
	fs := newFlagSet("encode", "<bits> [...]", "Encode bit strings to wire text")
	protocol := fs.String("protocol", "nec", "Frame protocol (aeha, nec, repeat, sirc)")
	var pf pipelineFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	pl, err := pf.build(os.Stderr)
	if err != nil {
		return err
	}
	defer pl.Close()

	return commands.RunEncode(pl.enc, *protocol, fs.Args(), os.Stdout)
}

func runReencode(args []string) error {
	fs := newFlagSet("reencode", "[record.cbor]", "Encode a CBOR capture record to wire text")
	var pf pipelineFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	pl, err := pf.build(os.Stderr)
	if err != nil {
		return err
	}
	defer pl.Close()

	in := io.Reader(os.Stdin)
	if fs.NArg() > 0 && fs.Arg(0) != "-" {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return commands.RunReencode(pl.enc, in, os.Stdout)
}

func runInteractive(args []string) error {
	fs := newFlagSet("interactive", "", "Start the interactive shell")
	library := fs.String("library", defaultLibrary, "Capture library file (empty disables)")
	var pf pipelineFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store *capture.Store
	if *library != "" {
		store = capture.NewStore(*library)
	}

	// Build the session first so debug logs go through the prompt.
	sess, err := interactive.New(nil, nil, store)
	if err != nil {
		return err
	}

	pl, err := pf.build(sess.Stdout())
	if err != nil {
		return err
	}
	defer pl.Close()
	sess.Attach(pl.dec, pl.enc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	sess.Run(ctx)
	return nil
}

func libraryFlagSet(name, args, summary string) (*flag.FlagSet, *string) {
	fs := newFlagSet(name, args, summary)
	return fs, fs.String("library", defaultLibrary, "Capture library file")
}

func runSave(args []string) error {
	fs, library := libraryFlagSet("save", "<name> <capture|@file|->", "Decode a capture and save it")
	var pf pipelineFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("name and capture required")
	}

	text, source, err := commands.ReadInput(fs.Arg(1), os.Stdin)
	if err != nil {
		return err
	}
	pl, err := pf.build(os.Stderr)
	if err != nil {
		return err
	}
	defer pl.Close()

	return commands.RunSave(capture.NewStore(*library), pl.dec, fs.Arg(0), text, source, os.Stdout)
}

func runList(args []string) error {
	fs, library := libraryFlagSet("list", "", "List saved captures")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return commands.RunList(capture.NewStore(*library), os.Stdout)
}

func runShow(args []string) error {
	fs, library := libraryFlagSet("show", "<id|name>", "Show a saved capture")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("id or name required")
	}
	return commands.RunShow(capture.NewStore(*library), fs.Arg(0), os.Stdout)
}

func runRemove(args []string) error {
	fs, library := libraryFlagSet("remove", "<id|name>", "Delete a saved capture")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("id or name required")
	}
	return commands.RunRemove(capture.NewStore(*library), fs.Arg(0), os.Stdout)
}
