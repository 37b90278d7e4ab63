package configarray

import "fmt"

// Strategy describes how one config key validates and merges, per §4.2.
// Validate receives the raw value stored under the key and should return a
// descriptive error if it is malformed; it is wrapped in a ValidationError
// carrying the key name automatically. Merge folds two values for the same
// key (either may be nil, meaning absent in that entry) into the value that
// should appear in the merged result; returning nil drops the key from the
// merged result entirely.
type Strategy struct {
	Required bool
	Validate func(value any) error
	Merge    func(a, b any) any
}

// Schema maps key name to the Strategy that governs it. The three
// recognized keys (name, files, ignores) always have base strategies;
// NewSchema layers a caller-supplied extension on top for user-defined
// keys, or to override a base strategy outright.
type Schema map[string]Strategy

// NewSchema builds a Schema from the base name/files/ignores strategies
// plus a caller-supplied extension. Extension entries win over base ones
// for the same key, so a caller may also replace the built-in behavior of
// name/files/ignores if it truly needs to.
func NewSchema(extension Schema) Schema {
	merged := baseSchema()
	for k, v := range extension {
		merged[k] = v
	}
	return merged
}

func baseSchema() Schema {
	return Schema{
		"name":    {Validate: validateName, Merge: dropMerge},
		"files":   {Validate: validateFiles, Merge: dropMerge},
		"ignores": {Validate: validateIgnores, Merge: dropMerge},
	}
}

// dropMerge is the base strategies' merge function: name/files/ignores are
// consumed by matching and never propagate into the merged result (§4.2:
// "entries that declare these do not propagate them in the merged result").
func dropMerge(a, b any) any { return nil }

func validateName(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("must be a string, got %T", v)
	}
	return nil
}

// validateFiles only checks element shape. Whether the list is non-empty
// is deliberately left to query time — see preparedEntry.filesInvalid.
func validateFiles(v any) error {
	list, ok := asPatternList(v)
	if !ok {
		return nil // shape-checked lazily at query time as InvalidFilesError
	}
	for i, p := range list {
		if err := validatePatternShape(p); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func validateIgnores(v any) error {
	list, ok := asPatternList(v)
	if !ok {
		return fmt.Errorf("must be a []Pattern or []string, got %T", v)
	}
	for i, p := range list {
		if _, isAnd := p.([]Pattern); isAnd {
			return fmt.Errorf("element %d: AND-sequences are only allowed in files", i)
		}
		if err := validatePatternShape(p); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func validatePatternShape(p Pattern) error {
	switch v := p.(type) {
	case string, PredicateFunc, func(string) bool:
		return nil
	case []Pattern:
		for i, e := range v {
			switch e.(type) {
			case string, PredicateFunc, func(string) bool:
			default:
				return fmt.Errorf("AND-sequence element %d must be a string or predicate, got %T", i, e)
			}
		}
		return nil
	default:
		return fmt.Errorf("must be a string, predicate, or []Pattern AND-sequence, got %T", v)
	}
}

// Validate checks entry against every key the schema recognizes: a
// required key that is absent fails, and a present key's value must pass
// its strategy's Validate. Keys the schema does not recognize are left to
// the caller's policy and are always accepted here (they are opaque
// user-defined data the schema chose not to describe).
func (s Schema) Validate(entry ConfigEntry) error {
	for key, strat := range s {
		v, present := entry[key]
		if !present {
			if strat.Required {
				return &ValidationError{Key: key, Message: "is required"}
			}
			continue
		}
		if strat.Validate == nil {
			continue
		}
		if err := strat.Validate(v); err != nil {
			return &ValidationError{Key: key, Message: err.Error()}
		}
	}
	return nil
}

// Merge left-associatively folds matched entries into one result, starting
// from an empty entry, per §4.2.
func (s Schema) Merge(entries []ConfigEntry) ConfigEntry {
	result := ConfigEntry{}
	for _, e := range entries {
		result = s.mergeOne(result, e)
	}
	return result
}

// mergeOne merges two entries without mutating either (§4.2: "Merging is
// pure").
func (s Schema) mergeOne(a, b ConfigEntry) ConfigEntry {
	out := make(ConfigEntry, len(a)+len(b))

	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	for k := range keys {
		av, aPresent := a[k]
		bv, bPresent := b[k]

		strat, known := s[k]
		var merged any
		if known && strat.Merge != nil {
			merged = strat.Merge(av, bv)
		} else if bPresent {
			merged = bv // last one wins for opaque, schema-less keys
		} else if aPresent {
			merged = av
		}

		if merged != nil {
			out[k] = merged
		}
	}

	return out
}
