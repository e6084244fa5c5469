package hws

import "github.com/mwalczyk/docdive"

// DefaultRules is the cleanup rule chain for converted Hacking with
// Swift articles. Ordering matters: section boundary rules remove the
// large navigation and footer blocks first, before literal and regex
// rules chip away at the markers those blocks are located by.
func DefaultRules() []docdive.CleanupRule {
	return []docdive.CleanupRule{
		// Site-wide navigation renders as a link list running from the
		// Forums entry through the subscription plug.
		docdive.SectionBoundaryRule{
			Start:     "- [Forums](/forums)",
			End:       "- [SUBSCRIBE](/plus)\n",
			Inclusive: true,
		},
		// Sponsorship callout boxes between article sections.
		docdive.SectionBoundaryRule{
			Start:     "**Sponsor Hacking with Swift**",
			End:       "[Learn more here](/sponsor)",
			Inclusive: true,
		},
		// Footer runs from the About link to the end of the page.
		docdive.SectionBoundaryRule{
			Start:     "- [About](/about)",
			Inclusive: true,
		},
		docdive.ExactMatchRule{
			Literal:        "Was this page useful? Let us know!",
			MaxOccurrences: -1,
		},
		docdive.ExactMatchRule{
			Literal:        "**Available from iOS – learn more in my book [Hacking with Swift](/store)**",
			MaxOccurrences: -1,
		},
		// Inline promo images for books and Hacking with Swift+.
		docdive.RegexRule{
			Pattern: `!\[Hacking with Swift[^\]]*\]\([^)]*\)`,
		},
		// "Similar solutions" cross-link lists trail most example-code
		// pages.
		docdive.RegexRule{
			Pattern: `## Similar solutions.*`,
			DotAll:  true,
		},
		docdive.LineFilterRule{Pattern: `^SPONSORED\b`},
		docdive.LineFilterRule{Pattern: `^(SAVE 50%|BUY OUR BOOKS|UPGRADE TO PRO)\b`},
		docdive.LineFilterRule{Pattern: `^Download this as an Xcode project$`},
	}
}
