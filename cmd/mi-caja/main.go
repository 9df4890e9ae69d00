// Package main is the entry point for the mi-caja server.
package main

import (
	"os"

	"github.com/donaldgifford/mi-caja/cmd/mi-caja/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
