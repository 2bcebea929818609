package main

import (
	"os"
)

// ---------------- Main ----------------
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
