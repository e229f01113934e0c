package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/infrared-remote/ir-go/pkg/capture"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/irtext"
)

// RunSave decodes text and stores it in the library under name.
func RunSave(store *capture.Store, dec *irremote.Decoder, name, text, source string, w io.Writer) error {
	res, err := dec.DecodeTextAs(irtext.FormatAuto, text, source)
	if err != nil {
		return err
	}
	e, err := capture.NewEntry(name, res.Format.String(), strings.TrimSpace(text), res.Demodulated, res.Codes)
	if err != nil {
		return err
	}
	e, err = store.Add(e)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s as %s (%s)\n", e.Name, e.ID, shortFingerprint(e.Fingerprint))
	return nil
}

// RunList prints a summary of every library entry.
func RunList(store *capture.Store, w io.Writer) error {
	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No saved captures")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-20s  %-10s  %s\n", "ID", "NAME", "PRINT", "PROTOCOLS")
	for _, e := range entries {
		fmt.Fprintf(w, "%-36s  %-20s  %-10s  %s\n", e.ID, e.Name, shortFingerprint(e.Fingerprint), strings.Join(e.Protocols, ","))
	}
	return nil
}

// RunShow prints one entry, looked up by ID or name.
func RunShow(store *capture.Store, key string, w io.Writer) error {
	e, err := store.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Name:        %s\n", e.Name)
	fmt.Fprintf(w, "Fingerprint: %s\n", e.Fingerprint)
	fmt.Fprintf(w, "Saved:       %s\n", e.SavedAt.Format("2006-01-02 15:04:05"))
	if e.Format != "" {
		fmt.Fprintf(w, "Format:      %s\n", e.Format)
	}
	fmt.Fprintf(w, "Protocols:   %s\n", strings.Join(e.Protocols, ", "))
	for i, fields := range e.Codes {
		fmt.Fprintf(w, "Code %d:\n", i)
		writeFields(w, fields)
	}
	fmt.Fprintf(w, "Input:\n%s\n", e.Input)
	return nil
}

// RunRemove deletes one entry, looked up by ID or name.
func RunRemove(store *capture.Store, key string, w io.Writer) error {
	if err := store.Remove(key); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %s\n", key)
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 10 {
		return fp[:10]
	}
	return fp
}
