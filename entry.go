package configarray

import "fmt"

// ConfigEntry is one user-authored config object: a set of recognized keys
// (name, files, ignores) plus arbitrary user-defined keys whose meaning is
// entirely owned by the caller-supplied Schema. It also doubles as the
// merged result type returned by GetConfig.
type ConfigEntry map[string]any

// clone returns a shallow copy of e. Used so Merge never mutates its
// inputs (§4.2: "Merging is pure").
func (e ConfigEntry) clone() ConfigEntry {
	out := make(ConfigEntry, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// entryClass is the classification described in §3 "Entry classification".
type entryClass uint8

const (
	entryOrdinary entryClass = iota
	entryFilesLess
	entryGlobalIgnore
)

// classifyEntry determines which matching rules apply to a raw entry.
func classifyEntry(e ConfigEntry) entryClass {
	_, hasFiles := e["files"]
	if hasFiles {
		return entryOrdinary
	}

	hasOtherKeys := false
	for k := range e {
		if k != "ignores" {
			hasOtherKeys = true
			break
		}
	}

	if hasOtherKeys {
		return entryFilesLess
	}

	// Only "ignores" (or nothing at all) is present.
	if _, hasIgnores := e["ignores"]; hasIgnores {
		return entryGlobalIgnore
	}

	// An entirely empty entry contributes nothing and matches unconditionally,
	// which is the same shape as a files-less entry with no keys to merge.
	return entryFilesLess
}

// preparedEntry is the post-normalize, post-validation form of a
// ConfigEntry: patterns are already compiled so GetConfig never recompiles
// a glob on the hot path.
type preparedEntry struct {
	raw     ConfigEntry
	class   entryClass
	files   []*compiledPattern // nil for files-less/global-ignore entries
	ignores []*compiledPattern // nil if the entry has no ignores key

	// filesInvalid is set when files is present but not a non-empty array
	// (§4.4.1 step 5). This is deliberately NOT a normalize-time
	// ValidationError: it surfaces lazily as InvalidFilesError the first
	// time GetConfig actually evaluates this entry against a query path,
	// rather than failing the whole array up front during normalization.
	filesInvalid bool
}

func prepareEntry(e ConfigEntry) (*preparedEntry, error) {
	class := classifyEntry(e)

	pe := &preparedEntry{raw: e, class: class}

	if class == entryOrdinary {
		list, ok := asPatternList(e["files"])
		if !ok || len(list) == 0 {
			pe.filesInvalid = true
		} else {
			compiled, err := compilePatterns(list)
			if err != nil {
				return nil, &ValidationError{Key: "files", Message: err.Error()}
			}
			pe.files = compiled
		}
	}

	if rawIgnores, ok := e["ignores"]; ok {
		list, ok := asPatternList(rawIgnores)
		if !ok {
			return nil, &ValidationError{Key: "ignores", Message: fmt.Sprintf("must be a []Pattern or []string, got %T", rawIgnores)}
		}
		compiled, err := compilePatterns(list)
		if err != nil {
			return nil, &ValidationError{Key: "ignores", Message: err.Error()}
		}
		pe.ignores = compiled
	}

	return pe, nil
}

// asPatternList coerces a raw files/ignores value into a []Pattern,
// accepting the ergonomic []string shape in addition to []Pattern. ok is
// false when v is not a recognized list shape at all.
func asPatternList(v any) (list []Pattern, ok bool) {
	switch l := v.(type) {
	case []Pattern:
		return l, true
	case []string:
		out := make([]Pattern, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
