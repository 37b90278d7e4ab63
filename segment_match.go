package configarray

import "strings"

// defaultMaxBacktrackIterations bounds ** and glob backtracking so a
// pathological pattern (e.g. many nested **) cannot cause unbounded CPU
// usage. The budget is shared across one Matches call.
const defaultMaxBacktrackIterations = 10000

// matchContext tracks state during matching to prevent runaway backtracking.
type matchContext struct {
	iterations int
	maxIter    int
}

func newMatchContext(maxIter int) *matchContext {
	if maxIter == 0 {
		maxIter = defaultMaxBacktrackIterations
	}
	return &matchContext{maxIter: maxIter}
}

func (ctx *matchContext) tick() bool {
	ctx.iterations++
	if ctx.maxIter < 0 {
		return true
	}
	return ctx.iterations <= ctx.maxIter
}

// matchGlobSegments checks whether a compiled glob pattern matches path,
// given whether path is a directory. path has already been split into
// segments by splitSlashPath. trailingDoubleStar marks a pattern ending in
// "/**": such a pattern matches everything inside the named directory but,
// like real git, never the directory itself.
func matchGlobSegments(segs []globSegment, anchored, dirOnly, trailingDoubleStar, isDir bool, path []string, ctx *matchContext) bool {
	if len(path) == 0 {
		return len(segs) == 0
	}

	// Directory-only patterns match the directory itself exactly when the
	// target is a directory, but only match strictly inside it when the
	// target is a file. A trailing "/**" never matches the directory it
	// prefixes, regardless of isDir.
	prefixMatch := (dirOnly && !isDir) || trailingDoubleStar

	if anchored {
		if prefixMatch {
			return matchSegmentsPrefix(segs, path, ctx)
		}
		return matchSegmentsExact(segs, path, ctx)
	}

	// Floating: try matching starting from each position in path.
	maxStart := len(path) - len(segs)
	if prefixMatch {
		maxStart = len(path) - 1
	}
	for i := 0; i <= maxStart; i++ {
		if !ctx.tick() {
			return false
		}
		if prefixMatch {
			if matchSegmentsPrefix(segs, path[i:], ctx) {
				return true
			}
		} else if matchSegmentsExact(segs, path[i:], ctx) {
			return true
		}
	}

	// A leading ** can match even when there are more pattern segments than
	// remaining path segments at every offset tried above.
	if len(segs) > 0 && segs[0].doubleStar {
		if prefixMatch {
			return matchSegmentsPrefix(segs, path, ctx)
		}
		return matchSegmentsExact(segs, path, ctx)
	}

	return false
}

// matchSegmentsExact recursively matches pattern segments against path
// segments with ** support; the path must be fully consumed.
func matchSegmentsExact(pattern []globSegment, path []string, ctx *matchContext) bool {
	if !ctx.tick() {
		return false
	}

	if len(pattern) == 0 {
		return len(path) == 0
	}

	seg := pattern[0]

	if seg.doubleStar {
		for i := 0; i <= len(path); i++ {
			if matchSegmentsExact(pattern[1:], path[i:], ctx) {
				return true
			}
			if !ctx.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSingleSegment(seg, path[0], ctx) {
		return false
	}

	return matchSegmentsExact(pattern[1:], path[1:], ctx)
}

// matchSegmentsPrefix matches pattern as a prefix of path: the pattern must
// be fully consumed but path may have segments left over (the file must be
// strictly inside the matched directory).
func matchSegmentsPrefix(pattern []globSegment, path []string, ctx *matchContext) bool {
	if !ctx.tick() {
		return false
	}

	if len(pattern) == 0 {
		return len(path) > 0
	}

	seg := pattern[0]

	if seg.doubleStar {
		for i := 0; i <= len(path); i++ {
			if matchSegmentsPrefix(pattern[1:], path[i:], ctx) {
				return true
			}
			if !ctx.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSingleSegment(seg, path[0], ctx) {
		return false
	}

	return matchSegmentsPrefix(pattern[1:], path[1:], ctx)
}

// matchSingleSegment matches one pattern segment against one path segment.
func matchSingleSegment(seg globSegment, pathSeg string, ctx *matchContext) bool {
	if seg.doubleStar {
		return true // handled by the caller; never reached directly
	}
	if !seg.wildcard {
		return seg.value == pathSeg
	}
	return matchGlob(seg.value, pathSeg, ctx)
}

// matchGlob matches a single glob segment (*, ?, \escape) against a string.
func matchGlob(pattern, s string, ctx *matchContext) bool {
	hasWild := strings.ContainsAny(pattern, "*?\\")
	if !hasWild {
		return pattern == s
	}
	if pattern == "*" {
		return true
	}

	hasEscape := strings.Contains(pattern, "\\")
	hasQuestion := strings.Contains(pattern, "?")
	if !hasQuestion && !hasEscape {
		if strings.Count(pattern, "*") == 1 && strings.HasSuffix(pattern, "*") {
			return strings.HasPrefix(s, pattern[:len(pattern)-1])
		}
		if strings.Count(pattern, "*") == 1 && strings.HasPrefix(pattern, "*") {
			return strings.HasSuffix(s, pattern[1:])
		}
	}

	return matchGlobRecursive(pattern, s, ctx)
}

// matchGlobRecursive performs bounded-backtracking glob matching supporting
// * (zero or more chars), ? (exactly one char), and \ (literal escape).
func matchGlobRecursive(pattern, s string, ctx *matchContext) bool {
	for len(pattern) > 0 {
		if !ctx.tick() {
			return false
		}

		if pattern[0] == '*' {
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchGlobRecursive(pattern, s[i:], ctx) {
					return true
				}
				if !ctx.tick() {
					return false
				}
			}
			return false
		}

		if pattern[0] == '?' {
			if len(s) == 0 {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
			continue
		}

		if pattern[0] == '\\' && len(pattern) > 1 {
			pattern = pattern[1:]
		}

		if len(s) == 0 {
			return false
		}
		if pattern[0] != s[0] {
			return false
		}
		pattern = pattern[1:]
		s = s[1:]
	}

	return len(s) == 0
}

// splitSlashPath splits a normalized, "/"-separated path into segments,
// dropping empty segments from leading/trailing/doubled slashes.
func splitSlashPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
