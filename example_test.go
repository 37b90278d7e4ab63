package configarray_test

import (
	"fmt"

	"github.com/configarray/configarray"
)

func ExampleNew() {
	arr := configarray.New([]configarray.RawConfigElement{
		configarray.ConfigEntry{"ignores": []string{"build/", "*.log"}},
		configarray.ConfigEntry{
			"name":     "go-files",
			"files":    []string{"**/*.go"},
			"ignores":  []string{"**/*_test.go"},
			"severity": "error",
		},
	}, "/repo", nil, 0)

	if err := arr.NormalizeSync(nil); err != nil {
		fmt.Println("normalize error:", err)
		return
	}

	cfg, _ := arr.GetConfig("/repo/pkg/main.go")
	fmt.Println(cfg["severity"])

	// main_test.go matches the entry's files but is excluded by the
	// entry's own ignores, and no other entry contributes: the result is
	// a non-nil, empty config, not a nil one.
	cfg, _ = arr.GetConfig("/repo/pkg/main_test.go")
	fmt.Println(len(cfg))

	ignored, _ := arr.IsFileIgnored("/repo/build/output.js")
	fmt.Println(ignored)
	// Output:
	// error
	// 0
	// true
}

func ExampleConfigArray_GetConfigWithReason() {
	arr := configarray.New([]configarray.RawConfigElement{
		configarray.ConfigEntry{"name": "defaults", "severity": "warn"},
		configarray.ConfigEntry{"name": "go-strict", "files": []string{"*.go"}, "severity": "error"},
	}, "/repo", nil, 0)

	if err := arr.NormalizeSync(nil); err != nil {
		fmt.Println("normalize error:", err)
		return
	}

	cfg, reasons, _ := arr.GetConfigWithReason("/repo/main.go")
	fmt.Println(cfg["severity"], reasons)
	// Output:
	// error [defaults go-strict]
}

func ExampleConfigArray_IsFileIgnoredWithReason() {
	arr := configarray.New([]configarray.RawConfigElement{
		configarray.ConfigEntry{"ignores": []string{"*.log", "!important.log"}},
	}, "/repo", nil, 0)

	if err := arr.NormalizeSync(nil); err != nil {
		fmt.Println("normalize error:", err)
		return
	}

	ignored, rule, _ := arr.IsFileIgnoredWithReason("/repo/debug.log")
	fmt.Printf("ignored=%v rule=%q\n", ignored, rule)

	ignored, rule, _ = arr.IsFileIgnoredWithReason("/repo/important.log")
	fmt.Printf("ignored=%v rule=%q\n", ignored, rule)
	// Output:
	// ignored=true rule="*.log"
	// ignored=false rule="!important.log"
}
