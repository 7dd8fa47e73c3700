package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// dateLayouts are accepted for time.Time fields, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// decodeEnvelope parses a JSON body into its generic form. Numbers are kept
// as json.Number so ids survive unchanged.
func decodeEnvelope(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env map[string]any
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvelopeShape, err)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: body is null", ErrEnvelopeShape)
	}
	return env, nil
}

// decodeList unwraps {"data": [...]}. A data field that is not a sequence
// yields an empty, non-nil slice and ErrEnvelopeShape.
func decodeList[T any](body []byte) ([]T, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return []T{}, err
	}

	raw, ok := env["data"].([]any)
	if !ok {
		return []T{}, fmt.Errorf("%w: data is %s, want a sequence", ErrEnvelopeShape, describe(env["data"]))
	}

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if decodeErr := decodeInto(item, &v); decodeErr != nil {
			return []T{}, fmt.Errorf("%w: item %d: %w", ErrEnvelopeShape, i, decodeErr)
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOne unwraps {"data": {...}}.
func decodeOne[T any](body []byte) (T, error) {
	var zero T
	env, err := decodeEnvelope(body)
	if err != nil {
		return zero, err
	}

	raw, ok := env["data"].(map[string]any)
	if !ok {
		return zero, fmt.Errorf("%w: data is %s, want an object", ErrEnvelopeShape, describe(env["data"]))
	}

	var v T
	if decodeErr := decodeInto(raw, &v); decodeErr != nil {
		return zero, fmt.Errorf("%w: %w", ErrEnvelopeShape, decodeErr)
	}
	return v, nil
}

// Decode converts a generic value, such as a JSON or YAML document read into
// a map, into out using the same rules as response payloads. Fields of out
// absent from input are left untouched.
func Decode(input any, out any) error {
	return decodeInto(input, out)
}

func decodeInto(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       timeHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// timeHook converts date strings into time.Time.
func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) || from.Kind() != reflect.String {
		return data, nil
	}
	s, _ := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as a date", s)
}

func describe(v any) string {
	if v == nil {
		return "missing"
	}
	return fmt.Sprintf("%T", v)
}
