// The main package for the qjobs executable.
package main

import (
	"github.com/JakeFAU/quantum-job-console/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
