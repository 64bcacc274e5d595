// iojson are utilities for writing JSON output from a command line
// interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteWith marshals obj as indented JSON and writes it to w followed by a
// newline.
func WriteWith(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout]
func Write(obj any) error {
	return WriteWith(os.Stdout, obj)
}

// WriteLine marshals obj compactly and writes it to w as a single line,
// suitable for JSON-lines output.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
