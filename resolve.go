package configarray

import "sync"

// cacheEntry is what GetConfig memoizes per file path: either a resolved
// (possibly nil) *ConfigEntry, or an error that should be replayed on
// every subsequent lookup of the same path.
type cacheEntry struct {
	value *ConfigEntry
	err   error
}

// resultCache is the two-level memoization structure described in §4.5/§9:
// a primary cache keyed by file path, backed by a secondary cache keyed by
// the ordered tuple of matched-entry indices so that two different paths
// matching the exact same set of entries share one *ConfigEntry (pointer
// equality), not just an equal value. Grounded on the mutex + dedup shape
// of WoozyMasta-pathrules's cachedDirMatcher.
type resultCache struct {
	mu      sync.Mutex
	byPath  map[string]cacheEntry
	byTuple map[string]*ConfigEntry
}

func newResultCache() *resultCache {
	return &resultCache{
		byPath:  make(map[string]cacheEntry),
		byTuple: make(map[string]*ConfigEntry),
	}
}

func (c *resultCache) get(path string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.byPath[path]
	return v, ok
}

func (c *resultCache) storeError(path string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPath[path] = cacheEntry{err: err}
	return err
}

func (c *resultCache) storeNil(path string) *ConfigEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPath[path] = cacheEntry{value: nil}
	return nil
}

// storeMerged interns the merged value by tuple so that paths sharing the
// same matched-entry set get back the identical pointer.
func (c *resultCache) storeMerged(path, tuple string, merged ConfigEntry) *ConfigEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byTuple[tuple]; ok {
		c.byPath[path] = cacheEntry{value: existing}
		return existing
	}
	v := &merged
	c.byTuple[tuple] = v
	c.byPath[path] = cacheEntry{value: v}
	return v
}

// matchedTupleKey builds a cheap, collision-free string key from an ordered
// list of matched-entry indices.
func matchedTupleKey(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(indices)*4)
	for i, idx := range indices {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendInt(buf, idx)
	}
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	if n < 0 {
		buf = append(buf, '-')
		n = -n
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// resolveConfig implements §4.5 GetConfig against an already-frozen
// ConfigArray's prepared entries.
func (a *ConfigArray) resolveConfig(filePath string) (*ConfigEntry, error) {
	absPath := filePath
	relPath, ok := relativize(a.basePath, absPath)
	if !ok {
		return a.cache.storeNil(filePath), nil
	}

	if cached, found := a.cache.get(filePath); found {
		return cached.value, cached.err
	}

	if a.isFileIgnoredPrepared(relPath, absPath) {
		return a.cache.storeNil(filePath), nil
	}

	var matched []ConfigEntry
	var indices []int
	explicit := false
	hasOrdinaryContribution := false

	for i, pe := range a.entries {
		switch pe.class {
		case entryGlobalIgnore:
			continue
		case entryFilesLess:
			matched = append(matched, pe.raw)
			indices = append(indices, i)
		case entryOrdinary:
			if matchEntryFiles(pe, relPath, absPath, false) {
				explicit = true
			}
			ok, err := matchOrdinaryEntry(pe, relPath, absPath, false)
			if err != nil {
				return nil, a.cache.storeError(filePath, err)
			}
			if ok {
				matched = append(matched, pe.raw)
				indices = append(indices, i)
				hasOrdinaryContribution = true
			}
		}
	}

	if !hasOrdinaryContribution && !explicit {
		return a.cache.storeNil(filePath), nil
	}

	merged := a.schema.Merge(matched)
	if a.finalizeConfig != nil {
		merged = a.finalizeConfig(merged)
	}

	tuple := matchedTupleKey(indices)
	return a.cache.storeMerged(filePath, tuple, merged), nil
}
