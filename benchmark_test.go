package configarray

import (
	"fmt"
	"testing"
)

func BenchmarkCompilePatterns_Small(b *testing.B) {
	list := []Pattern{"*.log", "build/", "node_modules/"}
	for i := 0; i < b.N; i++ {
		_, _ = compilePatterns(list)
	}
}

func BenchmarkCompilePatterns_Large(b *testing.B) {
	list := make([]Pattern, 0, 300)
	for i := 0; i < 100; i++ {
		list = append(list, fmt.Sprintf("*.ext%d", i), fmt.Sprintf("dir%d/", i), fmt.Sprintf("**/cache%d/", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = compilePatterns(list)
	}
}

func BenchmarkIsGloballyIgnored_Miss(b *testing.B) {
	patterns := mustCompileB(b, "*.log", "build/", "node_modules/")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, "src/main.go", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_Hit(b *testing.B) {
	patterns := mustCompileB(b, "*.log", "build/", "node_modules/")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, "debug.log", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_DirPattern(b *testing.B) {
	patterns := mustCompileB(b, "node_modules/")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, "node_modules/lodash/index.js", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_DeepPath(b *testing.B) {
	patterns := mustCompileB(b, "*.log", "**/temp/")
	path := "a/b/c/d/e/f/g/h/i/j/k/l/m/n/test.log"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, path, absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_DoubleStar(b *testing.B) {
	patterns := mustCompileB(b, "**/logs/**")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, "src/app/logs/error.log", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_ManyRules(b *testing.B) {
	list := make([]Pattern, 0, 200)
	for i := 0; i < 200; i++ {
		list = append(list, fmt.Sprintf("*.ext%d", i))
	}
	compiled, err := compilePatterns(list)
	if err != nil {
		b.Fatalf("compilePatterns: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(compiled, "src/main.go", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_Negation(b *testing.B) {
	patterns := mustCompileB(b, "*.log", "!important.log")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, "important.log", absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_AncestorWalk(b *testing.B) {
	patterns := mustCompileB(b, "*.log")
	path := "src/lib/internal/data.log"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, path, absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_Pathological(b *testing.B) {
	patterns := mustCompileB(b, "a/**/b/**/c/**/d")
	path := "a/x/x/x/x/x/b/x/x/x/x/c/x/x/x/x/d"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, path, absFor, false)
	}
}

func BenchmarkIsGloballyIgnored_PathologicalNoMatch(b *testing.B) {
	patterns := mustCompileB(b, "a/**/b/**/c/**/d")
	path := "a/x/x/x/x/x/b/x/x/x/x/c/x/x/x/x/e"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		isGloballyIgnored(patterns, path, absFor, false)
	}
}

func BenchmarkIsFileIgnoredWithReason(b *testing.B) {
	patterns := mustCompileB(b, "*.log", "build/")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		decidingPattern(patterns, "debug.log", "/repo/debug.log", false)
	}
}

func BenchmarkConfigArray_GetConfig_Concurrent(b *testing.B) {
	arr := New([]RawConfigElement{
		ConfigEntry{"ignores": []string{"*.log", "build/", "**/node_modules/**"}},
		ConfigEntry{"files": []string{"**/*.go"}, "severity": "error"},
	}, "/repo", nil, 0)
	if err := arr.NormalizeSync(nil); err != nil {
		b.Fatalf("NormalizeSync: %v", err)
	}

	paths := []string{
		"/repo/src/main.go",
		"/repo/debug.log",
		"/repo/build/out.js",
		"/repo/node_modules/x/y.js",
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = arr.GetConfig(paths[i%len(paths)])
			i++
		}
	})
}

func BenchmarkMatchGlob(b *testing.B) {
	b.Run("simple", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			matchGlob("*.log", "test.log", newMatchContext(0))
		}
	})
	b.Run("prefix", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			matchGlob("test_*", "test_foo_bar", newMatchContext(0))
		}
	})
	b.Run("complex", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			matchGlob("*test*spec*", "my_test_file_spec_v2", newMatchContext(0))
		}
	})
}

func BenchmarkRelativize(b *testing.B) {
	paths := []string{
		"/repo/src/main.go",
		`/repo/src\lib\file.go`,
		"/repo/./src/main.go",
		"/repo/src//lib//file.go",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		relativize("/repo", paths[i%len(paths)])
	}
}

func mustCompileB(b *testing.B, patterns ...string) []*compiledPattern {
	b.Helper()
	list := make([]Pattern, len(patterns))
	for i, p := range patterns {
		list[i] = p
	}
	compiled, err := compilePatterns(list)
	if err != nil {
		b.Fatalf("compilePatterns(%v): %v", patterns, err)
	}
	return compiled
}
