// If you are AI: This file serializes reports as YAML or deterministic CBOR.

package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for export formats other than yaml and cbor.
var ErrUnknownFormat = errors.New("unknown export format")

// encMode is the CBOR encoder configured with Core Deterministic Encoding,
// so the same report always produces identical bytes.
var encMode cbor.EncMode

// init builds encMode once at startup.
func init() {
	opts := cbor.CoreDetEncOptions()
	// References inside materialized values serialize as "#id" text.
	opts.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	encMode, err = opts.EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode writes v, a report or a slice of reports, to w in the named format.
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "cbor":
		b, err := encMode.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
