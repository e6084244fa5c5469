package main

import "fmt"

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, source := range deps.Coordinator.Sources() {
		fmt.Fprintln(deps.Stdout, source)
	}
	return nil
}
