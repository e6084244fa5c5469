package main

import (
	"context"
	"io"

	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/retrieve"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Coordinator *retrieve.Coordinator
	Reranker    *docdive.Reranker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`
	Retry   bool `help:"Retry transient fetch failures with backoff"`

	Search  SearchCmd  `cmd:"" help:"Search documentation sources"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch a documentation page as markdown"`
	Sources SourcesCmd `cmd:"" help:"List available documentation sources"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string   `arg:"" help:"Search query"`
	Sources []string `short:"s" name:"source" help:"Restrict to specific sources (repeatable)"`
	Max     int      `short:"n" default:"10" help:"Max results per source (0 for all)"`
	Rerank  bool     `short:"r" help:"Rerank results by relevance with Gemini"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL    string `arg:"" help:"Documentation page URL"`
	Source string `help:"Source identifier (inferred from the URL host when omitted)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
