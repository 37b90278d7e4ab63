package configarray

import "fmt"

// Pattern is one element accepted inside a ConfigEntry's files or ignores
// list: a gitignore/minimatch-style glob string, a PredicateFunc that
// decides by inspecting the absolute path directly, or (files only) an
// AND-sequence []Pattern of strings/predicates that must all match.
type Pattern any

// PredicateFunc is a Pattern that receives the absolute path being tested
// and reports whether it matches.
type PredicateFunc func(absolutePath string) bool

type patternKind uint8

const (
	kindGlob patternKind = iota
	kindPredicate
	kindAnd
)

// compiledPattern is the matchable form of one Pattern.
type compiledPattern struct {
	kind patternKind
	raw  string // original string, for Files()/Ignores() and debugging

	predicate PredicateFunc
	and       []*compiledPattern

	classification
	segments []globSegment
}

// compilePattern compiles a raw Pattern value into its matchable form,
// validating its shape along the way.
func compilePattern(p Pattern) (*compiledPattern, error) {
	switch v := p.(type) {
	case string:
		c, segs, err := parseGlobString(v)
		if err != nil {
			return nil, err
		}
		return &compiledPattern{kind: kindGlob, raw: v, classification: c, segments: segs}, nil

	case PredicateFunc:
		return &compiledPattern{kind: kindPredicate, predicate: v}, nil

	case func(string) bool:
		return &compiledPattern{kind: kindPredicate, predicate: PredicateFunc(v)}, nil

	case []Pattern:
		sub := make([]*compiledPattern, 0, len(v))
		for _, elem := range v {
			if _, isAnd := elem.([]Pattern); isAnd {
				return nil, &InvalidPatternError{Reason: "AND-sequences cannot be nested"}
			}
			cp, err := compilePattern(elem)
			if err != nil {
				return nil, err
			}
			sub = append(sub, cp)
		}
		if len(sub) == 0 {
			return nil, &InvalidPatternError{Reason: "AND-sequence must not be empty"}
		}
		return &compiledPattern{kind: kindAnd, and: sub}, nil

	default:
		return nil, &InvalidPatternError{Reason: fmt.Sprintf("unsupported pattern type %T", p)}
	}
}

// matchesRemainder reports whether the pattern matches, ignoring its own
// negation. Callers that need negation-aware state (the ignore algebras)
// use this together with Negated(); callers that just want "does this
// element match" (files OR-matching, AND sub-elements) use Matches.
func (cp *compiledPattern) matchesRemainder(relPath, absPath string, isDir bool) bool {
	switch cp.kind {
	case kindPredicate:
		return cp.predicate(absPath)
	case kindAnd:
		for _, sub := range cp.and {
			if !sub.Matches(relPath, absPath, isDir) {
				return false
			}
		}
		return true
	default: // kindGlob
		return matchGlobSegments(cp.segments, cp.anchored, cp.dirOnly, cp.doubleStarSuffix, isDir, splitSlashPath(relPath), newMatchContext(0))
	}
}

// Matches reports the pattern's final boolean, folding in its own negation
// (string patterns only; predicates and AND-sequences have no negation of
// their own beyond what their elements carry).
func (cp *compiledPattern) Matches(relPath, absPath string, isDir bool) bool {
	m := cp.matchesRemainder(relPath, absPath, isDir)
	if cp.kind == kindGlob && cp.negated {
		return !m
	}
	return m
}

// Negated reports whether this is a string pattern that started with "!".
func (cp *compiledPattern) Negated() bool {
	return cp.kind == kindGlob && cp.negated
}

// compilePatterns compiles an ordered list of raw Pattern values, failing
// on the first invalid element.
func compilePatterns(list []Pattern) ([]*compiledPattern, error) {
	compiled := make([]*compiledPattern, 0, len(list))
	for _, p := range list {
		cp, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}
