// Package interactive provides the ir-decode read-eval-print loop.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/infrared-remote/ir-go/cmd/ir-decode/commands"
	"github.com/infrared-remote/ir-go/pkg/capture"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/irtext"
)

// Session is an interactive decode session. It remembers the last decoded
// capture so it can be inspected or saved.
type Session struct {
	dec   *irremote.Decoder
	enc   *irremote.Encoder
	store *capture.Store
	rl    *readline.Instance
	out   io.Writer

	last     *irremote.Result
	lastText string
}

// New creates a session reading commands from the terminal. Store may be
// nil, which disables the library commands.
func New(dec *irremote.Decoder, enc *irremote.Encoder, store *capture.Store) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ir> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newSession(dec, enc, store, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newSession(dec *irremote.Decoder, enc *irremote.Encoder, store *capture.Store, out io.Writer) *Session {
	return &Session{dec: dec, enc: enc, store: store, out: out}
}

// Attach sets the decoder and encoder used by later commands.
func (s *Session) Attach(dec *irremote.Decoder, enc *irremote.Encoder) {
	s.dec, s.enc = dec, enc
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Session) Stdout() io.Writer { return s.out }

// Run reads commands until exit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		if ctx.Err() != nil {
			return
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if s.Execute(ctx, line) {
			return
		}
	}
}

// Execute runs one command line and reports whether the session should end.
func (s *Session) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "help", "?":
		s.printHelp()
	case "decode", "d":
		s.cmdDecode(rest)
	case "frames", "f":
		s.cmdFrames()
	case "encode", "e":
		s.cmdEncode(args)
	case "wire", "w":
		s.cmdWire()
	case "save":
		s.cmdSave(args)
	case "list", "ls":
		s.withStore(func(st *capture.Store) error { return commands.RunList(st, s.out) })
	case "show":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: show <id|name>")
			return false
		}
		s.withStore(func(st *capture.Store) error { return commands.RunShow(st, args[0], s.out) })
	case "remove", "rm":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: remove <id|name>")
			return false
		}
		s.withStore(func(st *capture.Store) error { return commands.RunRemove(st, args[0], s.out) })
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `
IR Decoder Commands:
  Decoding:
    decode <capture|@file>            - Decode hex, JSON or pigpio text
    frames                            - Show frames of the last capture
    wire                              - Re-encode the last capture to wire text

  Encoding:
    encode <protocol> <bits> [...]    - Encode frames to wire text

  Library:
    save <name>                       - Save the last capture
    list                              - List saved captures
    show <id|name>                    - Show a saved capture
    remove <id|name>                  - Delete a saved capture

  General:
    help                              - Show this help
    quit                              - Exit`)
}

func (s *Session) cmdDecode(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: decode <capture|@file>")
		fmt.Fprintln(s.out, "  Example: decode [3520, 1760, 440, 1320, 440, 440]")
		return
	}
	text, source, err := commands.ReadInput(arg, os.Stdin)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	res, err := s.dec.DecodeTextAs(irtext.FormatAuto, text, source)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.last, s.lastText = res, text
	if err := commands.WriteResult(s.out, commands.OutputText, res); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Session) cmdFrames() {
	if s.last == nil {
		fmt.Fprintln(s.out, "No capture decoded yet")
		return
	}
	for i, f := range s.last.Frames {
		leader := f.Leader()
		fmt.Fprintf(s.out, "  [%d] %-10s %3d pulses  leader %s\n",
			i, s.last.Demodulated[i].Protocol(), len(f), leader)
	}
}

func (s *Session) cmdEncode(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: encode <aeha|nec|repeat|sirc> <bits> [...]")
		fmt.Fprintln(s.out, "  Example: encode sirc 1010100_10000")
		return
	}
	if err := commands.RunEncode(s.enc, args[0], args[1:], s.out); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Session) cmdWire() {
	if s.last == nil {
		fmt.Fprintln(s.out, "No capture decoded yet")
		return
	}
	text, err := s.enc.EncodeWireText(s.last.Demodulated)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, text)
}

func (s *Session) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: save <name>")
		return
	}
	if s.last == nil {
		fmt.Fprintln(s.out, "No capture decoded yet")
		return
	}
	s.withStore(func(st *capture.Store) error {
		e, err := capture.NewEntry(args[0], s.last.Format.String(), strings.TrimSpace(s.lastText), s.last.Demodulated, s.last.Codes)
		if err != nil {
			return err
		}
		e, err = st.Add(e)
		if errors.Is(err, capture.ErrDuplicate) {
			fmt.Fprintf(s.out, "Already saved as %s (%s)\n", e.Name, e.ID)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %s as %s\n", e.Name, e.ID)
		return nil
	})
}

func (s *Session) withStore(fn func(*capture.Store) error) {
	if s.store == nil {
		fmt.Fprintln(s.out, "No capture library configured (use -library)")
		return
	}
	if err := fn(s.store); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}
