// Package main is the entry point for the mpc marketplace CLI.
package main

import (
	"github.com/donaldgifford/marketplace-client/cmd/mpc/cmd"
)

func main() {
	cmd.Execute()
}
