package main

import (
	"fmt"
	"os"

	"github.com/noelops/secret-santa/internal/settings"
)

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"settings.yml"}
	}

	failed := false
	for _, path := range paths {
		if _, err := settings.Load(path); err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("✅ %s is valid\n", path)
	}

	if failed {
		os.Exit(1)
	}
}
