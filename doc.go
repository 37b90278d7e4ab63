// Package configarray resolves a per-file effective configuration from an
// ordered list of config entries, each carrying glob/gitignore-style
// patterns (or predicate functions) that decide which files it applies to.
//
// It answers three questions about a file path: which entries apply, what
// their merged configuration is, and whether the path (or an ancestor
// directory) is ignored. The package does no I/O and no filesystem
// traversal; callers supply entries and a schema describing how
// user-defined keys validate and merge.
//
// # Basic usage
//
//	schema := configarray.NewSchema(configarray.Schema{
//	    "severity": {
//	        Validate: validateSeverity,
//	        Merge:    func(a, b any) any { return b }, // later entry wins
//	    },
//	})
//
//	arr := configarray.New([]configarray.RawConfigElement{
//	    configarray.ConfigEntry{"ignores": []string{"node_modules/", "*.log"}},
//	    configarray.ConfigEntry{
//	        "files":    []string{"**/*.go"},
//	        "severity": "error",
//	    },
//	}, "/repo", schema, 0)
//
//	if err := arr.NormalizeSync(nil); err != nil {
//	    // handle error
//	}
//
//	cfg, err := arr.GetConfig("/repo/internal/server.go")
//
// # Lifecycle
//
// A ConfigArray is mutable until Normalize or NormalizeSync succeeds, at
// which point it is frozen: Push fails with NotExtensibleError, and query
// methods (GetConfig, IsFileIgnored, IsDirectoryIgnored, IsExplicitMatch)
// become available. Normalizing twice is a no-op that returns the same
// frozen state.
//
// # Supported pattern syntax
//
//   - Plain names: "debug.log" matches by basename at any depth
//   - Leading /: "/debug.log" anchors to basePath
//   - Trailing /: "build/" matches directories (and everything under a
//     matched directory) but never the path itself as a file
//   - Single star: "*.log" matches within one path segment
//   - Double star: "**/logs", "logs/**" match at any depth / any descendant
//   - Negation: "!important.log" re-includes a path excluded by an earlier
//     pattern in the same ordered list
//   - AND-sequences: a []Pattern nested inside a files list, where every
//     element must match the same path
//   - Predicates: func(absolutePath string) bool, evaluated directly
//     against the absolute path rather than parsed as a glob
//   - Backslash: within a pattern segment, "\" makes the next character
//     literal, so "\*.log" matches a file named "*.log" and "\!x" (which is
//     not a negation) matches a file named "!x"
//
// # Unsupported
//
//   - Character classes such as [abc] or [0-9] are treated as literal text,
//     not a class, matching the glob engine this package is descended from
//
// # Thread safety
//
// Push and Normalize/NormalizeSync must not race each other or with
// queries. Once frozen, GetConfig and friends may be called concurrently;
// the memoization cache serializes its own writes.
package configarray
