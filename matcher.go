package configarray

import (
	"path"
	"strings"
)

// relativize computes path's location relative to basePath using "/"
// separators. ok is false when path escapes basePath (a leading ".."
// segment after relativizing), per §4.4.1: such files are treated as
// globally ignored.
func relativize(basePath, absPath string) (rel string, ok bool) {
	absPath = path.Clean(filepathToSlash(absPath))
	basePath = path.Clean(filepathToSlash(basePath))

	if absPath == basePath {
		return "", true
	}

	prefix := basePath
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	if !strings.HasPrefix(absPath, prefix) {
		// Not under basePath at all; compute the relative form anyway and
		// let the ".." check below catch it.
		rel = relPathFallback(basePath, absPath)
	} else {
		rel = strings.TrimPrefix(absPath, prefix)
	}

	if rel == ".." || strings.HasPrefix(rel, "../") {
		return rel, false
	}
	return rel, true
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// relPathFallback handles the case where absPath does not share basePath
// as a literal prefix (e.g. sibling directories), by walking up common
// ancestors the way filepath.Rel does, expressed over "/"-paths.
func relPathFallback(basePath, absPath string) string {
	baseParts := splitSlashPath(basePath)
	absParts := splitSlashPath(absPath)

	common := 0
	for common < len(baseParts) && common < len(absParts) && baseParts[common] == absParts[common] {
		common++
	}

	ups := len(baseParts) - common
	segs := make([]string, 0, ups+len(absParts)-common)
	for i := 0; i < ups; i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, absParts[common:]...)
	if len(segs) == 0 {
		return "."
	}
	return strings.Join(segs, "/")
}

// evalNegationFold runs the gitignore-style "last decisive match wins"
// algebra over an ordered pattern list against one path/isDir pair,
// starting from the given initial state.
func evalNegationFold(list []*compiledPattern, relPath, absPath string, isDir bool, initial bool) bool {
	state := initial
	for _, p := range list {
		if !p.matchesRemainder(relPath, absPath, isDir) {
			continue
		}
		if p.kind != kindGlob {
			state = false
			continue
		}
		state = p.negated // negated pattern -> included (true); plain -> ignored (false)
	}
	return state
}

// entryIgnoresExcludes reports whether pe's own `ignores` list excludes a
// file that already matched its `files` side (§4.4.1 step 4): simple
// sequential negation, no ancestor-directory walk.
func entryIgnoresExcludes(pe *preparedEntry, relPath, absPath string, isDir bool) bool {
	if len(pe.ignores) == 0 {
		return false
	}
	included := evalNegationFold(pe.ignores, relPath, absPath, isDir, true)
	return !included
}

// matchEntryFiles reports whether an ordinary entry's files side matches
// path, honoring AND-sequences and predicate/string element semantics.
func matchEntryFiles(pe *preparedEntry, relPath, absPath string, isDir bool) bool {
	for _, p := range pe.files {
		if p.Matches(relPath, absPath, isDir) {
			return true
		}
	}
	return false
}

// matchOrdinaryEntry implements §4.4.1 in full for one ordinary entry.
func matchOrdinaryEntry(pe *preparedEntry, relPath, absPath string, isDir bool) (bool, error) {
	if pe.filesInvalid {
		return false, &InvalidFilesError{Message: "files must be a non-empty array of patterns"}
	}
	if !matchEntryFiles(pe, relPath, absPath, isDir) {
		return false, nil
	}
	if entryIgnoresExcludes(pe, relPath, absPath, isDir) {
		return false, nil
	}
	return true, nil
}

// globalIgnorePatterns concatenates the ignores patterns of every
// global-ignore entry, in document order, per §4.4.2.
func globalIgnorePatterns(entries []*preparedEntry) []*compiledPattern {
	var all []*compiledPattern
	for _, pe := range entries {
		if pe.class == entryGlobalIgnore {
			all = append(all, pe.ignores...)
		}
	}
	return all
}

// isGloballyIgnored evaluates the global-ignore algebra for relPath, per
// §4.4.2. Strict ancestor directories are walked shallow to deep first:
// once one of them folds to ignored, the walk stops and the whole path is
// ignored regardless of what patterns say about the path itself ("Once a
// directory is ignored, descendants cannot be re-included unless an
// un-ignore pattern re-includes an ancestor"; a pattern that only targets
// the leaf is not targeting an ancestor). Only when no ancestor is ignored
// does the leaf path get its own fresh fold.
func isGloballyIgnored(patterns []*compiledPattern, relPath string, absPathFor func(rel string) string, isDir bool) bool {
	if relPath == "" || relPath == "." {
		return false
	}
	segs := splitSlashPath(relPath)
	if len(segs) == 0 {
		return false
	}

	for i := 1; i < len(segs); i++ {
		levelRel := strings.Join(segs[:i], "/")
		if !evalNegationFold(patterns, levelRel, absPathFor(levelRel), true, true) {
			return true
		}
	}

	included := evalNegationFold(patterns, relPath, absPathFor(relPath), isDir, true)
	return !included
}
