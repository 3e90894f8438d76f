// Package codec encodes command output. JSON is the default for people
// and scripts; CBOR uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same value always produces the same bytes.
//
// Types carry only `json` tags. fxamacker/cbor falls back to them when no
// `cbor` tag is present, so one tag names the field in both formats.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	CBOR Format = "cbor"
)

// ErrUnknownFormat is returned for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown format")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Variants serialize by name, matching their JSON form.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CBOR:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes v to w in format f. JSON output is indented and ends with
// a newline.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case CBOR:
		data, err := Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Decode reads one value in format f from r into v.
func Decode(r io.Reader, f Format, v any) error {
	switch f {
	case JSON:
		return json.NewDecoder(r).Decode(v)
	case CBOR:
		return decMode.NewDecoder(r).Decode(v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}
