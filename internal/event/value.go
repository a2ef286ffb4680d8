package event

import (
	"fmt"

	"github.com/illfygli/neophyte/internal/rpc"
)

// tuple is one positional event argument list, read strictly left to right.
// Getters name the field they were after so decode failures identify it.
type tuple struct {
	name string
	vals []any
}

func (t tuple) len() int { return len(t.vals) }

func (t tuple) at(i int, field string) (any, error) {
	if i >= len(t.vals) {
		return nil, fmt.Errorf("missing field %q at position %d", field, i)
	}
	return t.vals[i], nil
}

func (t tuple) int(i int, field string) (int, error) {
	v, err := t.at(i, field)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("field %q: got %T, want integer", field, v)
	}
	return n, nil
}

func (t tuple) string(i int, field string) (string, error) {
	v, err := t.at(i, field)
	if err != nil {
		return "", err
	}
	s, ok := asString(v)
	if !ok {
		return "", fmt.Errorf("field %q: got %T, want string", field, v)
	}
	return s, nil
}

func (t tuple) bool(i int, field string) (bool, error) {
	v, err := t.at(i, field)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q: got %T, want bool", field, v)
	}
	return b, nil
}

func (t tuple) float(i int, field string) (float64, error) {
	v, err := t.at(i, field)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("field %q: got %T, want number", field, v)
	}
	return f, nil
}

func (t tuple) array(i int, field string) ([]any, error) {
	v, err := t.at(i, field)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: got %T, want array", field, v)
	}
	return arr, nil
}

func (t tuple) table(i int, field string) (map[string]any, error) {
	v, err := t.at(i, field)
	if err != nil {
		return nil, err
	}
	m, err := asTable(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return m, nil
}

func (t tuple) window(i int, field string) (rpc.Window, error) {
	v, err := t.at(i, field)
	if err != nil {
		return 0, err
	}
	switch w := v.(type) {
	case rpc.Window:
		return w, nil
	default:
		if n, ok := asInt(v); ok {
			return rpc.Window(n), nil
		}
		return 0, fmt.Errorf("field %q: got %T, want window handle", field, v)
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// asString accepts both str and bin payloads; the decoder may surface either
// for byte-string data.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// asTable normalizes a decoded msgpack map to string keys. Neovim keys every
// map it sends with strings, but the decoder falls back to untyped keys for
// mixed maps.
func asTable(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := asString(k)
			if !ok {
				return nil, fmt.Errorf("map key: got %T, want string", k)
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %T, want map", v)
	}
}
