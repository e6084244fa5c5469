package main

import (
	"fmt"

	"github.com/mwalczyk/docdive"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	sources := make([]docdive.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		source := docdive.Source(s)
		if !source.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown source %q. Run 'docdive sources' to see available sources.\n", s)
			return docdive.Errorf(docdive.EINVALID, "unknown source %q", s)
		}
		sources = append(sources, source)
	}

	results, failures, err := deps.Coordinator.Search(deps.Ctx, c.Query, sources, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdive.ErrorMessage(err))
		return err
	}
	for source, ferr := range failures {
		fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", source, docdive.ErrorMessage(ferr))
	}

	if c.Rerank && deps.Reranker != nil {
		reranked, err := deps.Reranker.Rerank(deps.Ctx, c.Query, results)
		if err != nil {
			// Documented recovery: retain the original order.
			fmt.Fprintf(deps.Stderr, "warning: rerank failed, keeping original order: %s\n", docdive.ErrorMessage(err))
		} else {
			results = reranked
		}
	}

	fmt.Fprint(deps.Stdout, docdive.FormatResults(results))
	return nil
}
