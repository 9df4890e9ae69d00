// Package main is the entry point for the cajactl CLI client.
package main

import (
	"github.com/donaldgifford/mi-caja/cmd/cajactl/cmd"
)

func main() {
	cmd.Execute()
}
