package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/apple"
	"github.com/mwalczyk/docdive/cache"
	"github.com/mwalczyk/docdive/gemini"
	"github.com/mwalczyk/docdive/htmltomarkdown"
	dochttp "github.com/mwalczyk/docdive/http"
	"github.com/mwalczyk/docdive/hws"
	"github.com/mwalczyk/docdive/readability"
	"github.com/mwalczyk/docdive/retrieve"
	docslog "github.com/mwalczyk/docdive/slog"
	"google.golang.org/genai"
)

// requestsPerSecond limits outbound fetches per domain.
const requestsPerSecond = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Coordinator and Reranker can be preset for end-to-end testing;
	// Run wires the real stack when they are nil.
	Coordinator *retrieve.Coordinator
	Reranker    *docdive.Reranker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdive"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdive --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Coordinator == nil {
		m.Coordinator = buildCoordinator(logger, cli.Retry)
	}
	deps.Coordinator = m.Coordinator

	if cmd == "search" && cli.Search.Rerank {
		if m.Reranker == nil {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			m.Reranker = docdive.NewReranker(gemini.NewScorer(client),
				docdive.WithRerankLogger(logger))
		}
		deps.Reranker = m.Reranker
	}

	return kongCtx.Run(deps)
}

// buildCoordinator wires the real retrieval stack: a rate-limited HTTP
// fetcher per payload type, one retriever per source, logging
// decorators around everything.
func buildCoordinator(logger *slog.Logger, retry bool) *retrieve.Coordinator {
	limiter := dochttp.NewDomainLimiter(requestsPerSecond)

	var htmlFetcher docdive.Fetcher = dochttp.NewFetcher(
		dochttp.WithAccept("text/html"),
		dochttp.WithDomainLimiter(limiter),
	)
	var jsonFetcher docdive.Fetcher = dochttp.NewFetcher(
		dochttp.WithAccept("application/json"),
		dochttp.WithDomainLimiter(limiter),
	)
	if retry {
		htmlFetcher = &retrieve.RetryFetcher{Fetcher: htmlFetcher, Logger: logger}
		jsonFetcher = &retrieve.RetryFetcher{Fetcher: jsonFetcher, Logger: logger}
	}
	htmlFetcher = docslog.NewLoggingFetcher(htmlFetcher, logger)
	jsonFetcher = docslog.NewLoggingFetcher(jsonFetcher, logger)

	appleRetriever := &apple.Retriever{
		SearchFetcher: htmlFetcher,
		DataFetcher:   jsonFetcher,
		Cache:         cache.New(),
	}
	hwsRetriever := &hws.Retriever{
		Fetcher: htmlFetcher,
		Converter: &hws.DocumentConverter{
			Markdown: htmltomarkdown.NewConverter(),
			Fallback: readability.NewExtractor(),
			Cleanup:  docdive.NewEngine(logger, hws.DefaultRules()...),
		},
		Cache: cache.New(),
	}

	return retrieve.NewCoordinator(logger,
		docslog.NewLoggingRetriever(appleRetriever, logger),
		docslog.NewLoggingRetriever(hwsRetriever, logger),
	)
}
