package docdive

import (
	"log/slog"
	"regexp"
	"strings"
)

// CleanupRule is one boilerplate-removal transformation in the markdown
// cleanup chain. Rules are immutable values; an Engine holds an ordered
// list of them and applies each rule to the previous rule's output.
//
// Rule lists are authored so that structural boundary removal runs
// first (largest contiguous garbage blocks), then exact-match literal
// removal, then general regex removal, then line-level filters.
// Reordering changes output: boundary rules operate on raw markers that
// later rules might otherwise delete piecemeal.
type CleanupRule interface {
	// compile turns the rule into its pure apply function, or fails if
	// the rule's pattern is malformed.
	compile() (func(string) string, error)
}

// SectionBoundaryRule removes the span between a start marker and an
// end marker, repeatedly. With Inclusive set the markers themselves are
// removed too. An empty End removes from the first Start to the end of
// the document, once. When End is declared but never found after a
// Start occurrence, the rule removes from that Start to the end of the
// document and stops, so unbalanced markers cannot loop.
type SectionBoundaryRule struct {
	Start     string
	End       string
	Inclusive bool
}

func (r SectionBoundaryRule) compile() (func(string) string, error) {
	return func(doc string) string {
		if r.Start == "" {
			return doc
		}
		var sb strings.Builder
		rest := doc
		for {
			i := strings.Index(rest, r.Start)
			if i < 0 {
				sb.WriteString(rest)
				break
			}
			if r.End == "" {
				sb.WriteString(rest[:i])
				break
			}
			after := i + len(r.Start)
			j := strings.Index(rest[after:], r.End)
			if j < 0 {
				sb.WriteString(rest[:i])
				break
			}
			endIdx := after + j
			if r.Inclusive {
				sb.WriteString(rest[:i])
				rest = rest[endIdx+len(r.End):]
			} else {
				sb.WriteString(rest[:after])
				rest = rest[endIdx:]
			}
		}
		return sb.String()
	}, nil
}

// ExactMatchRule removes a literal substring. MaxOccurrences of -1
// removes every occurrence; any n >= 0 removes at most n.
type ExactMatchRule struct {
	Literal        string
	MaxOccurrences int
}

func (r ExactMatchRule) compile() (func(string) string, error) {
	return func(doc string) string {
		if r.Literal == "" {
			return doc
		}
		return strings.Replace(doc, r.Literal, "", r.MaxOccurrences)
	}, nil
}

// RegexRule removes every match of a regular expression across the
// whole document.
type RegexRule struct {
	Pattern         string
	CaseInsensitive bool
	DotAll          bool
}

func (r RegexRule) compile() (func(string) string, error) {
	pattern := r.Pattern
	var flags string
	if r.CaseInsensitive {
		flags += "i"
	}
	if r.DotAll {
		flags += "s"
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(doc string) string {
		return re.ReplaceAllString(doc, "")
	}, nil
}

// LineFilterRule drops every line matching a regular expression.
type LineFilterRule struct {
	Pattern string
}

func (r LineFilterRule) compile() (func(string) string, error) {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, err
	}
	return func(doc string) string {
		lines := strings.Split(doc, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !re.MatchString(line) {
				kept = append(kept, line)
			}
		}
		return strings.Join(kept, "\n")
	}, nil
}

// Engine applies an ordered cleanup rule chain to markdown. Clean is
// pure and total: a malformed rule is skipped at construction with a
// logged warning rather than failing any document, and a final
// whitespace-normalization pass always runs regardless of rules.
//
// Clean is idempotent: Clean(Clean(m)) == Clean(m).
type Engine struct {
	rules  []func(string) string
	logger *slog.Logger
}

// NewEngine compiles the rule list in order. Malformed rules are logged
// and dropped. A nil logger discards warnings.
func NewEngine(logger *slog.Logger, rules ...CleanupRule) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{logger: logger}
	for i, rule := range rules {
		apply, err := rule.compile()
		if err != nil {
			logger.Warn("skipping malformed cleanup rule",
				"index", i,
				"rule", rule,
				"error", err,
			)
			continue
		}
		e.rules = append(e.rules, apply)
	}
	return e
}

// Clean runs every rule in order, then normalizes whitespace.
func (e *Engine) Clean(markdown string) string {
	doc := markdown
	for _, apply := range e.rules {
		doc = apply(doc)
	}
	return NormalizeWhitespace(doc)
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// NormalizeWhitespace trims trailing whitespace from each line,
// collapses runs of blank lines to a single blank line, trims the
// document, and ensures exactly one trailing newline. Empty input stays
// empty.
func NormalizeWhitespace(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	doc = strings.Join(lines, "\n")
	doc = blankRunRe.ReplaceAllString(doc, "\n\n")
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	return doc + "\n"
}
