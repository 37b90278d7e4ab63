package configarray

import "strings"

// classification holds the derived properties of a parsed string pattern,
// per the data model in §3: negated, directory-only, root-anchored, and
// the two suffix shapes. Matching special-cases doubleStarSuffix;
// singleStarSuffix is recorded but not consulted, since a trailing "*"
// segment already matches only direct children.
type classification struct {
	negated          bool
	dirOnly          bool
	anchored         bool
	doubleStarSuffix bool
	singleStarSuffix bool
}

// globSegment is one "/"-delimited piece of a parsed glob pattern.
type globSegment struct {
	value      string // literal or glob text (empty for **)
	wildcard   bool   // contains *, ?, \, or [ - requires glob matching
	doubleStar bool   // is ** - matches zero or more path segments
}

// parseGlobString parses a single pattern string into its classification
// and matchable segments. Unlike a .gitignore file line, a pattern string
// here has no comment syntax and no surrounding whitespace semantics: it
// is already one element of a files/ignores list, supplied programmatically.
func parseGlobString(raw string) (classification, []globSegment, error) {
	if raw == "" {
		return classification{}, nil, &InvalidPatternError{Pattern: raw, Reason: "pattern is empty"}
	}

	line := raw
	var c classification

	if strings.HasPrefix(line, "!") {
		c.negated = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		c.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if line == "" {
		return classification{}, nil, &InvalidPatternError{
			Pattern: raw,
			Reason:  "pattern is empty after stripping negation/trailing slash",
		}
	}

	c.doubleStarSuffix = strings.HasSuffix(line, "/**")
	c.singleStarSuffix = !c.doubleStarSuffix && strings.HasSuffix(line, "/*")

	anchored, trimmed, emptyAfterSlash := determineAnchoring(line)
	if emptyAfterSlash {
		return classification{}, nil, &InvalidPatternError{
			Pattern: raw,
			Reason:  "pattern is empty after removing leading slash",
		}
	}
	c.anchored = anchored

	return c, parseGlobSegments(trimmed), nil
}

// determineAnchoring resolves the anchoring state of a pattern line. A
// pattern is anchored if it starts with /, or if it contains / and does not
// start with "**/".
func determineAnchoring(line string) (anchored bool, trimmed string, emptyAfterSlash bool) {
	if strings.HasPrefix(line, "/") {
		line = line[1:]
		if line == "" {
			return true, "", true
		}
		return true, line, false
	}
	if strings.Contains(line, "/") && !strings.HasPrefix(line, "**/") {
		return true, line, false
	}
	return false, line, false
}

// parseGlobSegments splits a pattern by "/" and classifies each segment.
func parseGlobSegments(pattern string) []globSegment {
	parts := strings.Split(pattern, "/")
	segments := make([]globSegment, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			// From a leading/trailing/doubled slash; already handled above
			// for leading, harmless to skip here for the rest.
			continue
		}

		seg := globSegment{value: part}

		switch {
		case part == "**":
			seg.doubleStar = true
			seg.value = ""
		case strings.ContainsAny(part, "*?\\["):
			seg.wildcard = true
		}

		segments = append(segments, seg)
	}

	return segments
}
