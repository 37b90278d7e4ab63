package configarray

import (
	"context"
	"sync"
)

// FinalizeFunc post-processes a merged config before it is cached and
// returned from GetConfig. The default is identity.
type FinalizeFunc func(ConfigEntry) ConfigEntry

// PreprocessFunc runs on each plain entry before schema validation during
// normalization. The default is identity; implementations that need
// basePath can close over the owning ConfigArray.
type PreprocessFunc func(ConfigEntry) ConfigEntry

// ConfigArray resolves a per-file effective configuration from an ordered
// list of config entries. It is safe for concurrent use once normalized;
// see the package doc for the two-phase lifecycle.
//
// Thread safety: Push and Normalize/NormalizeSync must not be called
// concurrently with each other or with queries. Once normalized, GetConfig
// and the other query methods may be called concurrently; the memoization
// cache serializes its own writes internally.
type ConfigArray struct {
	mu sync.RWMutex

	basePath         string
	schema           Schema
	extraConfigTypes ExtraConfigTypes
	preprocessConfig PreprocessFunc
	finalizeConfig   FinalizeFunc

	raw        []RawConfigElement
	normalized bool
	entries    []*preparedEntry // valid only once normalized
	warnings   []string

	cache *resultCache
}

// New creates a ConfigArray over the given initial entries. basePath must
// be an absolute path; schema may be nil to use the base schema
// (name/files/ignores only); extraConfigTypes may be 0 to disable both
// nested arrays and factory callables.
func New(entries []RawConfigElement, basePath string, schema Schema, extraConfigTypes ExtraConfigTypes) *ConfigArray {
	if schema == nil {
		schema = baseSchema()
	}
	a := &ConfigArray{
		basePath:         basePath,
		schema:           schema,
		extraConfigTypes: extraConfigTypes,
		cache:            newResultCache(),
	}
	a.raw = append(a.raw, entries...)
	return a
}

// SetPreprocessConfig overrides the preprocessConfig hook (§4.3). Must be
// called before Normalize/NormalizeSync.
func (a *ConfigArray) SetPreprocessConfig(fn PreprocessFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.preprocessConfig = fn
}

// SetFinalizeConfig overrides the finalizeConfig hook (§4.5). Must be
// called before Normalize/NormalizeSync.
func (a *ConfigArray) SetFinalizeConfig(fn FinalizeFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.finalizeConfig = fn
}

// Push appends a raw element to the array. Fails with NotExtensibleError
// once the array is frozen.
func (a *ConfigArray) Push(elem RawConfigElement) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.normalized {
		return &NotExtensibleError{}
	}
	a.raw = append(a.raw, elem)
	return nil
}

// NormalizeSync normalizes the array without allowing any factory to
// return a Deferred value; such a return fails with AsyncNotSupportedError
// and aborts normalization, leaving the array mutable.
func (a *ConfigArray) NormalizeSync(callerCtx any) error {
	return a.normalize(context.Background(), callerCtx, false)
}

// Normalize normalizes the array, awaiting any Deferred values factories
// return. Cancelling ctx aborts normalization and discards partial state;
// a subsequent call re-runs from scratch.
func (a *ConfigArray) Normalize(ctx context.Context, callerCtx any) error {
	return a.normalize(ctx, callerCtx, true)
}

func (a *ConfigArray) normalize(ctx context.Context, callerCtx any, allowAsync bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.normalized {
		return nil // idempotent
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	opts := normalizeOpts{
		ctx:        ctx,
		callerCtx:  callerCtx,
		extraTypes: a.extraConfigTypes,
		preprocess: a.preprocessConfig,
		schema:     a.schema,
		allowAsync: allowAsync,
	}

	flat, err := flattenList(a.raw, opts)
	if err != nil {
		return err
	}

	prepared := make([]*preparedEntry, 0, len(flat))
	for _, e := range flat {
		pe, err := prepareEntry(e)
		if err != nil {
			return err
		}
		prepared = append(prepared, pe)
	}

	a.entries = prepared
	a.normalized = true
	return nil
}

// GetConfig computes the merged configuration for filePath, per §4.5. It
// returns (nil, nil) when no entry's files matched (and the file is not
// explicitly matched by a files entry whose own ignores excluded it).
func (a *ConfigArray) GetConfig(filePath string) (ConfigEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return nil, &NotNormalizedError{Op: "GetConfig"}
	}
	result, err := a.resolveConfig(filePath)
	if err != nil || result == nil {
		return nil, err
	}
	return *result, nil
}

// GetConfigWithReason is like GetConfig but also reports which entries
// match filePath, by declared name, falling back to "#<index>": every
// files-less entry and every ordinary entry whose files and ignores admit
// the path. The list is returned even when the merged result is nil; for a
// path outside basePath or globally ignored, both are nil.
func (a *ConfigArray) GetConfigWithReason(filePath string) (ConfigEntry, []string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return nil, nil, &NotNormalizedError{Op: "GetConfigWithReason"}
	}

	relPath, ok := relativize(a.basePath, filePath)
	if !ok {
		return nil, nil, nil
	}
	if a.isFileIgnoredPrepared(relPath, filePath) {
		return nil, nil, nil
	}

	var reasons []string
	for i, pe := range a.entries {
		switch pe.class {
		case entryFilesLess:
			reasons = append(reasons, entryLabel(pe, i))
		case entryOrdinary:
			if ok, _ := matchOrdinaryEntry(pe, relPath, filePath, false); ok {
				reasons = append(reasons, entryLabel(pe, i))
			}
		}
	}

	cfg, err := a.resolveConfig(filePath)
	if err != nil || cfg == nil {
		return nil, reasons, err
	}
	return *cfg, reasons, nil
}

func entryLabel(pe *preparedEntry, index int) string {
	if name, ok := pe.raw["name"].(string); ok && name != "" {
		return name
	}
	return indexLabel(index)
}

func indexLabel(i int) string {
	buf := appendInt(nil, i)
	return "#" + string(buf)
}

// IsFileIgnored reports whether filePath is excluded by the global ignore
// algebra (§4.4.2) or falls outside basePath.
func (a *ConfigArray) IsFileIgnored(filePath string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return false, &NotNormalizedError{Op: "IsFileIgnored"}
	}
	relPath, ok := relativize(a.basePath, filePath)
	if !ok {
		return true, nil
	}
	return a.isFileIgnoredPrepared(relPath, filePath), nil
}

// IsFileIgnoredWithReason is like IsFileIgnored but also returns the
// deciding pattern string, if the decision came from a string pattern.
func (a *ConfigArray) IsFileIgnoredWithReason(filePath string) (bool, string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return false, "", &NotNormalizedError{Op: "IsFileIgnoredWithReason"}
	}
	relPath, ok := relativize(a.basePath, filePath)
	if !ok {
		return true, "outside basePath", nil
	}
	patterns := globalIgnorePatterns(a.entries)
	reason := decidingPattern(patterns, relPath, filePath, false)
	return a.isFileIgnoredPrepared(relPath, filePath), reason, nil
}

// decidingPattern walks the same ancestor levels as isGloballyIgnored and
// returns the raw text of whichever pattern last changed the fold state,
// for diagnostics only.
func decidingPattern(patterns []*compiledPattern, relPath, absPath string, isDir bool) string {
	segs := splitSlashPath(relPath)
	if len(segs) == 0 {
		return ""
	}
	last := ""
	for i := 1; i <= len(segs); i++ {
		levelRel := joinSlash(segs[:i])
		levelIsDir := true
		if i == len(segs) {
			levelIsDir = isDir
		}
		for _, p := range patterns {
			if p.kind != kindGlob {
				continue
			}
			if p.dirOnly && !levelIsDir {
				continue
			}
			if p.matchesRemainder(levelRel, absPath, levelIsDir) {
				last = p.raw
			}
		}
		if i < len(segs) && !evalNegationFold(patterns, levelRel, absPath, true, true) {
			return last
		}
	}
	return last
}

func joinSlash(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}

func (a *ConfigArray) isFileIgnoredPrepared(relPath, absPath string) bool {
	patterns := globalIgnorePatterns(a.entries)
	if len(patterns) == 0 {
		return false
	}
	return isGloballyIgnored(patterns, relPath, func(string) string { return absPath }, false)
}

// IsDirectoryIgnored reports whether dirPath is excluded by the global
// ignore algebra, evaluated with the directory flag set (§4.4.3).
func (a *ConfigArray) IsDirectoryIgnored(dirPath string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return false, &NotNormalizedError{Op: "IsDirectoryIgnored"}
	}
	dirPath = trimTrailingSlash(dirPath)
	relPath, ok := relativize(a.basePath, dirPath)
	if !ok {
		return true, nil
	}
	patterns := globalIgnorePatterns(a.entries)
	if len(patterns) == 0 {
		return false, nil
	}
	return isGloballyIgnored(patterns, relPath, func(string) string { return dirPath }, true), nil
}

func trimTrailingSlash(p string) string {
	for len(p) > 1 && (p[len(p)-1] == '/' || p[len(p)-1] == '\\') {
		p = p[:len(p)-1]
	}
	return p
}

// IsExplicitMatch reports whether some entry's files key, evaluated
// ignoring that entry's own ignores, matches filePath (§4.4.4).
func (a *ConfigArray) IsExplicitMatch(filePath string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.normalized {
		return false, &NotNormalizedError{Op: "IsExplicitMatch"}
	}
	relPath, ok := relativize(a.basePath, filePath)
	if !ok {
		return false, nil
	}
	for _, pe := range a.entries {
		if pe.class != entryOrdinary || pe.filesInvalid {
			continue
		}
		if matchEntryFiles(pe, relPath, filePath, false) {
			return true, nil
		}
	}
	return false, nil
}

// Files returns the raw pattern text of every non-negated string files
// pattern across all ordinary entries, in document order. Predicate and
// AND-sequence elements have no single raw string and are omitted, as are
// negated patterns.
func (a *ConfigArray) Files() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []string
	for _, pe := range a.entries {
		for _, p := range pe.files {
			if p.kind == kindGlob && !p.negated {
				out = append(out, p.raw)
			}
		}
	}
	return out
}

// Ignores returns the raw pattern text of every string pattern across all
// entries' ignores lists, in document order. Predicate elements have no
// single raw string and are omitted; negated patterns are
// kept (unlike Files, a "!" entry is part of the ignore list's own algebra).
func (a *ConfigArray) Ignores() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []string
	for _, pe := range a.entries {
		for _, p := range pe.ignores {
			if p.kind == kindGlob {
				out = append(out, p.raw)
			}
		}
	}
	return out
}

// Warnings returns the non-fatal notes added through addWarning, in the
// order they were added. Normalization never adds one: the core resolver
// reports problems only as errors.
func (a *ConfigArray) Warnings() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.warnings...)
}

// addWarning attaches a non-fatal note to the array. It is unexported, so
// only code inside this package can call it.
func (a *ConfigArray) addWarning(w string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = append(a.warnings, w)
}
