package apple

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mwalczyk/docdive"
)

// Recursion ceilings for the content tree walk. Apple's payloads are
// normally shallow; the caps guarantee termination on malformed or
// cyclic input. Exceeding a cap truncates that subtree to empty rather
// than erroring.
const (
	maxBlockDepth  = 50
	maxInlineDepth = 20
)

// defaultSyntax is the fence language used when a code listing declares
// none.
const defaultSyntax = "swift"

// ContentNode is one node of Apple's tagged documentation content tree.
// The shape is deliberately loose: every field is optional and only the
// fields relevant to a node's Type are populated. Unknown types fall
// through to their Text, never to an error.
type ContentNode struct {
	Type          string        `json:"type"`
	Text          string        `json:"text"`
	Code          CodeValue     `json:"code"`
	Syntax        string        `json:"syntax"`
	Level         int           `json:"level"`
	Identifier    string        `json:"identifier"`
	Style         string        `json:"style"`
	Name          string        `json:"name"`
	InlineContent []ContentNode `json:"inlineContent"`
	Content       []ContentNode `json:"content"`
	Items         []ListItem    `json:"items"`
}

// ListItem is one entry of an ordered or unordered list node.
type ListItem struct {
	Content []ContentNode `json:"content"`
}

// CodeValue absorbs the two encodings Apple uses for code: a plain
// string on inline codeVoice nodes and a slice of lines on codeListing
// nodes.
type CodeValue struct {
	Lines []string
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (c *CodeValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Lines = []string{s}
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.Lines = lines
	return nil
}

// String joins the code lines back into one block.
func (c CodeValue) String() string {
	return strings.Join(c.Lines, "\n")
}

// Reference is one entry of the document's reference table, keyed by
// identifier. It resolves cross-reference identifiers to readable
// labels and destinations.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Document is the decoded shape of a documentation page's JSON payload.
type Document struct {
	Metadata struct {
		Title       string `json:"title"`
		RoleHeading string `json:"roleHeading"`
	} `json:"metadata"`
	Abstract               []ContentNode        `json:"abstract"`
	PrimaryContentSections []Section            `json:"primaryContentSections"`
	TopicSections          []TopicGroup         `json:"topicSections"`
	SeeAlsoSections        []TopicGroup         `json:"seeAlsoSections"`
	References             map[string]Reference `json:"references"`
}

// Section is one primary content section, discriminated by Kind.
type Section struct {
	Kind         string        `json:"kind"`
	Content      []ContentNode `json:"content"`
	Declarations []Declaration `json:"declarations"`
	Parameters   []Parameter   `json:"parameters"`
}

// Declaration is a formal symbol declaration rendered as a code block.
type Declaration struct {
	Tokens []struct {
		Text string `json:"text"`
	} `json:"tokens"`
	Languages []string `json:"languages"`
}

// Parameter is one entry of a parameter-list section.
type Parameter struct {
	Name    string        `json:"name"`
	Content []ContentNode `json:"content"`
}

// TopicGroup is a titled group of cross-references (topic or see-also).
type TopicGroup struct {
	Title       string   `json:"title"`
	Identifiers []string `json:"identifiers"`
}

// ConvertDocument decodes a documentation JSON payload and renders it
// as markdown with a front-matter block. It fails hard only on
// undecodable JSON (ECONVERSION naming the decode failure); individual
// unrecognized nodes degrade to plain text.
func ConvertDocument(raw []byte, pageURL string, fetched time.Time) (title, markdown string, err error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", "", docdive.Errorf(docdive.ECONVERSION, "decoding documentation JSON for %s: %v", pageURL, err)
	}

	title = doc.Metadata.Title
	if title == "" {
		title = lastPathSegment(pageURL)
	}

	var sb strings.Builder
	sb.WriteString(docdive.RenderFrontmatter(title, pageURL, fetched))

	sb.WriteString("# " + title + "\n\n")
	if doc.Metadata.RoleHeading != "" {
		sb.WriteString("*" + doc.Metadata.RoleHeading + "*\n\n")
	}

	if abstract := RenderInline(doc.Abstract, doc.References); abstract != "" {
		sb.WriteString(abstract + "\n\n")
	}

	for _, section := range doc.PrimaryContentSections {
		sb.WriteString(renderSection(section, doc.References))
	}

	sb.WriteString(renderTopicGroups("Topics", doc.TopicSections, doc.References))
	sb.WriteString(renderTopicGroups("See Also", doc.SeeAlsoSections, doc.References))

	return title, docdive.NormalizeWhitespace(sb.String()), nil
}

func renderSection(section Section, refs map[string]Reference) string {
	switch section.Kind {
	case "declarations":
		var sb strings.Builder
		for _, decl := range section.Declarations {
			lang := defaultSyntax
			if len(decl.Languages) > 0 && decl.Languages[0] != "" {
				lang = decl.Languages[0]
			}
			var code strings.Builder
			for _, tok := range decl.Tokens {
				code.WriteString(tok.Text)
			}
			sb.WriteString("```" + lang + "\n" + code.String() + "\n```\n\n")
		}
		return sb.String()
	case "parameters":
		if len(section.Parameters) == 0 {
			return ""
		}
		var sb strings.Builder
		sb.WriteString("## Parameters\n\n")
		for _, param := range section.Parameters {
			desc := renderBlocksTight(param.Content, refs)
			sb.WriteString("- `" + param.Name + "`: " + desc + "\n")
		}
		sb.WriteString("\n")
		return sb.String()
	default:
		// "content" and anything unrecognized: render the blocks.
		return RenderContent(section.Content, refs)
	}
}

func renderTopicGroups(heading string, groups []TopicGroup, refs map[string]Reference) string {
	if len(groups) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## " + heading + "\n\n")
	for _, group := range groups {
		if group.Title != "" {
			sb.WriteString("### " + group.Title + "\n\n")
		}
		for _, id := range group.Identifiers {
			sb.WriteString("- " + renderReference(id, refs) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderReference resolves an identifier through the reference table,
// producing a markdown link when a destination is known and falling
// back to the identifier's last path segment otherwise.
func renderReference(identifier string, refs map[string]Reference) string {
	ref, ok := refs[identifier]
	if !ok || ref.Title == "" {
		return lastPathSegment(identifier)
	}
	if ref.URL == "" {
		return ref.Title
	}
	target := ref.URL
	if strings.HasPrefix(target, "/") {
		target = Origin + target
	}
	return fmt.Sprintf("[%s](%s)", ref.Title, target)
}

// RenderContent renders a slice of block-level content nodes. Each
// block is followed by a blank line.
func RenderContent(nodes []ContentNode, refs map[string]Reference) string {
	return renderBlocks(nodes, refs, 0)
}

func renderBlocks(nodes []ContentNode, refs map[string]Reference, depth int) string {
	if depth > maxBlockDepth {
		return ""
	}
	var sb strings.Builder
	for _, node := range nodes {
		if block := renderBlock(node, refs, depth); block != "" {
			sb.WriteString(block + "\n\n")
		}
	}
	return sb.String()
}

// renderBlocksTight renders blocks on a single line, for list items and
// parameter descriptions.
func renderBlocksTight(nodes []ContentNode, refs map[string]Reference) string {
	rendered := renderBlocks(nodes, refs, 0)
	return strings.Join(strings.Fields(rendered), " ")
}

func renderBlock(node ContentNode, refs map[string]Reference, depth int) string {
	switch node.Type {
	case "paragraph":
		return renderInline(node.InlineContent, refs, 0)
	case "heading":
		level := node.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + node.Text
	case "codeListing":
		syntax := node.Syntax
		if syntax == "" {
			syntax = defaultSyntax
		}
		return "```" + syntax + "\n" + node.Code.String() + "\n```"
	case "unorderedList":
		var sb strings.Builder
		for i, item := range node.Items {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + renderItemContent(item.Content, refs, depth+1))
		}
		return sb.String()
	case "orderedList":
		var sb strings.Builder
		for i, item := range node.Items {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%d. %s", i+1, renderItemContent(item.Content, refs, depth+1))
		}
		return sb.String()
	case "aside":
		label := "Note"
		if node.Style != "" {
			label = strings.ToUpper(node.Style[:1]) + node.Style[1:]
		}
		body := renderBlocksTight(node.Content, refs)
		return "> **" + label + ":** " + body
	case "text":
		return node.Text
	default:
		// Untyped fallback: a node that carries children is rendered
		// through them, one that carries text passes through as text.
		if len(node.Content) > 0 {
			return strings.TrimRight(renderBlocks(node.Content, refs, depth+1), "\n")
		}
		if len(node.InlineContent) > 0 {
			return renderInline(node.InlineContent, refs, 0)
		}
		return node.Text
	}
}

func renderItemContent(nodes []ContentNode, refs map[string]Reference, depth int) string {
	if depth > maxBlockDepth {
		return ""
	}
	var parts []string
	for _, node := range nodes {
		if rendered := renderBlock(node, refs, depth); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, " ")
}

// RenderInline renders a slice of inline content nodes to one line.
func RenderInline(nodes []ContentNode, refs map[string]Reference) string {
	return renderInline(nodes, refs, 0)
}

func renderInline(nodes []ContentNode, refs map[string]Reference, depth int) string {
	if depth > maxInlineDepth {
		return ""
	}
	var sb strings.Builder
	for _, node := range nodes {
		switch node.Type {
		case "text":
			sb.WriteString(node.Text)
		case "codeVoice":
			sb.WriteString("`" + node.Code.String() + "`")
		case "reference":
			sb.WriteString(renderReference(node.Identifier, refs))
		case "emphasis":
			sb.WriteString("*" + renderInline(node.InlineContent, refs, depth+1) + "*")
		case "strong":
			sb.WriteString("**" + renderInline(node.InlineContent, refs, depth+1) + "**")
		default:
			if len(node.InlineContent) > 0 {
				sb.WriteString(renderInline(node.InlineContent, refs, depth+1))
			} else {
				sb.WriteString(node.Text)
			}
		}
	}
	return sb.String()
}

// lastPathSegment returns the final path segment of a URL or
// identifier, used as a label of last resort.
func lastPathSegment(s string) string {
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
