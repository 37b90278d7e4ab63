package configarray

import (
	"context"
	"fmt"
)

// RawConfigElement is anything that may appear in the list passed to New or
// Push before normalization: a plain ConfigEntry, a nested list of more
// RawConfigElement values (requires ArrayType), a ConfigFactory (requires
// FunctionType), or a Deferred value returned by a factory.
type RawConfigElement any

// ConfigFactory produces a RawConfigElement given the caller-supplied
// context value passed to Normalize/NormalizeSync.
type ConfigFactory func(ctx any) (RawConfigElement, error)

// DeferredResolver is the blocking body of a Deferred value: it receives
// the ambient context.Context passed to Normalize (not the ConfigFactory's
// caller context) so it can be cancelled.
type DeferredResolver func(ctx context.Context) (RawConfigElement, error)

// Deferred is returned by a ConfigFactory to signal that producing its
// result requires awaiting. Normalize awaits it; NormalizeSync rejects it
// with AsyncNotSupportedError.
type Deferred struct {
	Resolve DeferredResolver
}

// ExtraConfigTypes is the set of optional element kinds a ConfigArray
// accepts beyond plain ConfigEntry values, drawn from {array, function}.
type ExtraConfigTypes uint8

const (
	ArrayType ExtraConfigTypes = 1 << iota
	FunctionType
)

func (t ExtraConfigTypes) has(flag ExtraConfigTypes) bool { return t&flag != 0 }

// normalizeOpts bundles the inputs flattenElement needs that stay constant
// across one normalization pass.
type normalizeOpts struct {
	ctx        context.Context
	callerCtx  any
	extraTypes ExtraConfigTypes
	preprocess func(ConfigEntry) ConfigEntry
	schema     Schema
	allowAsync bool // false for NormalizeSync
}

// flattenList normalizes an ordered list of RawConfigElement values into a
// flat, validated list of ConfigEntry values, per §4.3.
func flattenList(list []RawConfigElement, opts normalizeOpts) ([]ConfigEntry, error) {
	var out []ConfigEntry
	for _, elem := range list {
		entries, err := flattenElement(elem, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

func flattenElement(elem RawConfigElement, opts normalizeOpts) ([]ConfigEntry, error) {
	switch v := elem.(type) {
	case ConfigEntry:
		return validateOne(v, opts)

	case map[string]any:
		return validateOne(ConfigEntry(v), opts)

	case []RawConfigElement:
		if !opts.extraTypes.has(ArrayType) {
			return nil, &UnexpectedArrayError{}
		}
		return flattenList(v, opts)

	case []any:
		if !opts.extraTypes.has(ArrayType) {
			return nil, &UnexpectedArrayError{}
		}
		converted := make([]RawConfigElement, len(v))
		for i, e := range v {
			converted[i] = e
		}
		return flattenList(converted, opts)

	case ConfigFactory:
		return invokeFactory(v, opts)

	case func(any) (RawConfigElement, error):
		return invokeFactory(ConfigFactory(v), opts)

	case Deferred:
		if !opts.allowAsync {
			return nil, &AsyncNotSupportedError{}
		}
		result, err := v.Resolve(opts.ctx)
		if err != nil {
			return nil, err
		}
		return flattenFactoryResult(result, opts)

	default:
		return nil, fmt.Errorf("configarray: unsupported config element type %T", elem)
	}
}

func invokeFactory(f ConfigFactory, opts normalizeOpts) ([]ConfigEntry, error) {
	if !opts.extraTypes.has(FunctionType) {
		return nil, &UnexpectedFunctionError{}
	}
	result, err := f(opts.callerCtx)
	if err != nil {
		return nil, err
	}
	return flattenFactoryResult(result, opts)
}

// flattenFactoryResult handles the return value of a factory or a Deferred
// resolver: another factory is rejected outright, everything else is
// traversed the same way a top-level element would be.
func flattenFactoryResult(result RawConfigElement, opts normalizeOpts) ([]ConfigEntry, error) {
	switch result.(type) {
	case ConfigFactory, func(any) (RawConfigElement, error):
		return nil, &InvalidReturnError{}
	}
	return flattenElement(result, opts)
}

func validateOne(e ConfigEntry, opts normalizeOpts) ([]ConfigEntry, error) {
	if opts.preprocess != nil {
		e = opts.preprocess(e)
	}
	if err := opts.schema.Validate(e); err != nil {
		return nil, err
	}
	return []ConfigEntry{e}, nil
}
