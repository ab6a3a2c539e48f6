package jsonmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	tjson "github.com/tdewolff/parse/v2/json"
)

// ErrNotObject is returned by DecodeObject when the top-level value is not
// a JSON object.
var ErrNotObject = errors.New("top-level value is not an object")

// Decode parses a complete JSON document.
func Decode(data []byte) (any, error) {
	// The tokenizer tolerates stray commas, so the syntax is checked first.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	d := &decoder{p: tjson.NewParser(parse.NewInputBytes(data))}

	v, err := d.value(d.next())
	if err != nil {
		return nil, err
	}

	// Anything but a clean EOF after the top-level value is trailing garbage.
	if gt, _ := d.next(); gt != tjson.ErrorGrammar {
		return nil, errors.New("unexpected data after top-level value")
	}
	if err := d.p.Err(); err != nil && err != io.EOF {
		return nil, err
	}
	return v, nil
}

// DecodeObject parses a JSON document whose top-level value must be an object.
func DecodeObject(data []byte) (*Map, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Map)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

type decoder struct {
	p *tjson.Parser
}

func (d *decoder) next() (tjson.GrammarType, []byte) {
	for {
		gt, data := d.p.Next()
		if gt != tjson.WhitespaceGrammar {
			return gt, data
		}
	}
}

// failure turns the parser state into an error for an unexpected token.
func (d *decoder) failure(gt tjson.GrammarType) error {
	if gt == tjson.ErrorGrammar {
		err := d.p.Err()
		if err == nil || err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return fmt.Errorf("unexpected token %v", gt)
}

func (d *decoder) value(gt tjson.GrammarType, data []byte) (any, error) {
	switch gt {
	case tjson.StartObjectGrammar:
		return d.object()
	case tjson.StartArrayGrammar:
		return d.array()
	case tjson.StringGrammar:
		return unquote(data)
	case tjson.NumberGrammar:
		return json.Number(string(data)), nil
	case tjson.LiteralGrammar:
		switch string(data) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		return nil, fmt.Errorf("invalid literal %q", data)
	default:
		return nil, d.failure(gt)
	}
}

func (d *decoder) object() (*Map, error) {
	m := New()
	for {
		gt, data := d.next()
		switch gt {
		case tjson.EndObjectGrammar:
			return m, nil
		case tjson.StringGrammar:
			key, err := unquote(data)
			if err != nil {
				return nil, err
			}
			v, err := d.value(d.next())
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		default:
			return nil, d.failure(gt)
		}
	}
}

func (d *decoder) array() ([]any, error) {
	out := []any{}
	for {
		gt, data := d.next()
		if gt == tjson.EndArrayGrammar {
			return out, nil
		}
		v, err := d.value(gt, data)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// unquote decodes a string token. The parser hands back the raw token
// including its quotes; escapes are resolved by encoding/json.
func unquote(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' {
		return string(data), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("invalid string %s: %w", data, err)
	}
	return s, nil
}
