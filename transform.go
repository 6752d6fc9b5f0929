package herald

import (
	"errors"
	"fmt"

	"github.com/casualjim/herald/internal/chain"
	"github.com/casualjim/herald/pkg/jsonx"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON is reported when a JSON step receives a payload that is not valid JSON.
var ErrInvalidJSON = errors.New("invalid json payload")

// Map appends a step that replaces the payload with fn's result.
// Go methods cannot introduce type parameters, so type-changing steps are
// functions taking the pipe:
//
//	herald.Map(o.Pipe().Filter(isEven), strconv.Itoa).Subscribe(print)
func Map[S, T, U any](p *Pipe[S, T], fn func(T) U) *Pipe[S, U] {
	if p == nil {
		return nil
	}
	p.push(chain.Transform(func(v any) (any, error) {
		t, _ := v.(T)
		return fn(t), nil
	}))
	return &Pipe[S, U]{sub: p.sub}
}

// TryMap is Map for fallible transforms: an error drops the value and goes
// to the subscription's error handler.
func TryMap[S, T, U any](p *Pipe[S, T], fn func(T) (U, error)) *Pipe[S, U] {
	if p == nil {
		return nil
	}
	p.push(chain.Transform(func(v any) (any, error) {
		t, _ := v.(T)
		return fn(t)
	}))
	return &Pipe[S, U]{sub: p.sub}
}

// ToJSON serializes the payload into a JSON string.
func ToJSON[S, T any](p *Pipe[S, T]) *Pipe[S, string] {
	return TryMap(p, func(v T) (string, error) {
		return jsonx.Encode(v)
	})
}

// FromJSON deserializes a JSON string payload into a U:
//
//	herald.FromJSON[User](raw.Pipe()).Subscribe(onUser)
func FromJSON[U, S any](p *Pipe[S, string]) *Pipe[S, U] {
	return TryMap(p, jsonx.Decode[U])
}

// Pluck replaces a JSON string payload with the value found at path, using
// gjson path syntax. Values without anything at path are dropped.
func Pluck[S any](p *Pipe[S, string], path string) *Pipe[S, gjson.Result] {
	if p == nil {
		return nil
	}
	p.push(func(f *chain.Flow) error {
		raw, _ := f.Payload.(string)
		if !gjson.Valid(raw) {
			return fmt.Errorf("pluck %q: %w", path, ErrInvalidJSON)
		}
		res := gjson.Get(raw, path)
		if !res.Exists() {
			return nil
		}
		f.Payload = res
		f.Available = true
		return nil
	})
	return &Pipe[S, gjson.Result]{sub: p.sub}
}

// Patch sets value at path in a JSON string payload, using sjson path syntax.
func Patch[S any](p *Pipe[S, string], path string, value any) *Pipe[S, string] {
	return TryMap(p, func(raw string) (string, error) {
		if !gjson.Valid(raw) {
			return "", fmt.Errorf("patch %q: %w", path, ErrInvalidJSON)
		}
		return sjson.Set(raw, path, value)
	})
}
