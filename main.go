// The main package for the ddr executable.
package main

import (
	"github.com/sebbesen/ddr/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
