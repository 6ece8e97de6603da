package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/codeapi/internal/config"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	errNotKnown  = errors.New("value is not known at load time")
	errRequired  = errors.New("a value is required")
	errEmptyText = errors.New("must not be empty")
)

// Option configures a Registry at build time.
type Option func(*Registry)

// WithObserver attaches instrumentation to the registry's lookup cache.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// Build converts the declaring units into an immutable Registry. Units are
// processed in the given order; units without entries and units that fail
// to materialize are skipped.
func Build(ctx context.Context, units []*config.Unit, opts ...Option) *Registry {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building status code registry.", "units", len(units))

	r := &Registry{observer: nopObserver{}}
	for _, opt := range opts {
		opt(r)
	}

	for _, unit := range units {
		if unit == nil {
			continue
		}
		if len(unit.Entries) == 0 {
			logger.Debug("Skipping unit without codes.", "unit", unit.ID)
			continue
		}
		group, err := newGroup(unit)
		if err != nil {
			logger.Error("Skipping malformed declaration unit.", "unit", unit.ID, "source", unit.Source, "error", err)
			continue
		}
		r.groups = append(r.groups, group)
	}

	r.index, r.keys = flatten(ctx, r.groups)

	serialized, err := json.Marshal(r.index)
	if err != nil {
		// Code holds only strings and ints, so this cannot happen.
		panic(fmt.Errorf("catalog: serializing code index: %w", err))
	}
	r.serialized = string(serialized)
	r.cache = newLookupCache(r.match, r.observer)

	logger.Info("Status code registry built.", "groups", len(r.groups), "codes", len(r.index))
	return r
}

// newGroup resolves the group metadata of a unit and materializes its
// entries in declaration order.
func newGroup(unit *config.Unit) (Group, error) {
	group := Group{Name: unit.ID}
	if d := unit.Descriptor; d != nil {
		if d.Name != "" {
			group.Name = d.Name
		}
		group.Theme = d.Theme
	}

	group.Codes = make([]Code, 0, len(unit.Entries))
	for _, entry := range unit.Entries {
		code, err := materialize(unit.ID, entry)
		if err != nil {
			return Group{}, err
		}
		if code.Color == "" {
			code.Color = group.Theme
		}
		group.Codes = append(group.Codes, code)
	}
	return group, nil
}

func materialize(unitID string, e *config.Entry) (Code, error) {
	fail := func(attr string, err error) (Code, error) {
		return Code{}, &DeclarationError{UnitID: unitID, Entry: e.Name, Attribute: attr, Err: err}
	}

	var code Code
	if err := decodeRequired(e.Number, cty.Number, &code.Number); err != nil {
		return fail("number", err)
	}
	if err := decodeRequired(e.Message, cty.String, &code.Message); err != nil {
		return fail("message", err)
	}
	if code.Message == "" {
		return fail("message", errEmptyText)
	}
	if !e.Color.IsNull() {
		if err := decodeRequired(e.Color, cty.String, &code.Color); err != nil {
			return fail("color", err)
		}
	}
	return code, nil
}

// decodeRequired converts a raw declared value to ty and stores it in the Go
// value pointed to by target.
func decodeRequired(val cty.Value, ty cty.Type, target any) error {
	if val.IsNull() {
		return errRequired
	}
	if !val.IsWhollyKnown() {
		return errNotKnown
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}

// flatten builds the number index in group then declaration order. A later
// code overwrites an earlier one with the same number; keys keeps the order
// in which each key was first inserted.
func flatten(ctx context.Context, groups []Group) (map[string]Code, []string) {
	logger := ctxlog.FromContext(ctx)

	size := 0
	for _, g := range groups {
		size += g.Len()
	}
	index := make(map[string]Code, size)
	keys := make([]string, 0, size)

	for _, g := range groups {
		for _, code := range g.Codes {
			key := code.Key()
			if prev, exists := index[key]; exists {
				logger.Debug("Duplicate code number, last declaration wins.", "code", code.Number, "previous", prev.Message, "group", g.Name)
			} else {
				keys = append(keys, key)
			}
			index[key] = code
		}
	}
	return index, keys
}
