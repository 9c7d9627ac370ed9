package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// EditorNode is a single node of a rich-text editor document.
// Block nodes carry Content, text nodes carry Text, marks and node
// attributes live in Attrs/Marks.
type EditorNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []EditorMark   `json:"marks,omitempty"`
	Content []EditorNode   `json:"content,omitempty"`
}

// EditorMark is an inline formatting mark on a text node (bold, italic, link).
type EditorMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// EditorDoc is a rich-text document stored as a JSON node tree.
// It is persisted as JSONB and rendered to HTML for printing and to
// plain text for search indexing.
type EditorDoc struct {
	Type    string       `json:"type"`
	Content []EditorNode `json:"content,omitempty"`
}

// NewEditorDoc creates an empty editor document
func NewEditorDoc() EditorDoc {
	return EditorDoc{Type: "doc"}
}

// NewEditorDocFromText creates a document with a single paragraph of plain text
func NewEditorDocFromText(text string) EditorDoc {
	doc := NewEditorDoc()
	if text == "" {
		return doc
	}
	doc.Content = []EditorNode{
		{
			Type: "paragraph",
			Content: []EditorNode{
				{Type: "text", Text: text},
			},
		},
	}
	return doc
}

// ParseEditorDoc parses a JSON document tree
func ParseEditorDoc(data []byte) (EditorDoc, error) {
	var doc EditorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return EditorDoc{}, fmt.Errorf("invalid editor document: %w", err)
	}
	if doc.Type == "" {
		doc.Type = "doc"
	}
	return doc, nil
}

// IsEmpty returns true if the document has no textual content
func (d EditorDoc) IsEmpty() bool {
	return strings.TrimSpace(d.PlainText()) == ""
}

// PlainText flattens the document to plain text.
// Block boundaries become newlines, hard breaks become a single newline.
func (d EditorDoc) PlainText() string {
	var sb strings.Builder
	for i, node := range d.Content {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeNodeText(&sb, node)
	}
	return sb.String()
}

func writeNodeText(sb *strings.Builder, node EditorNode) {
	switch node.Type {
	case "text":
		sb.WriteString(node.Text)
	case "hardBreak":
		sb.WriteString("\n")
	default:
		for i, child := range node.Content {
			if i > 0 && isBlockNode(child.Type) {
				sb.WriteString("\n")
			}
			writeNodeText(sb, child)
		}
	}
}

func isBlockNode(nodeType string) bool {
	switch nodeType {
	case "paragraph", "heading", "blockquote", "bulletList", "orderedList", "listItem", "codeBlock":
		return true
	}
	return false
}

// HTML renders the document to an HTML fragment for printing.
// Unknown node types render their children without a wrapping element.
func (d EditorDoc) HTML() string {
	var sb strings.Builder
	for _, node := range d.Content {
		writeNodeHTML(&sb, node)
	}
	return sb.String()
}

func writeNodeHTML(sb *strings.Builder, node EditorNode) {
	switch node.Type {
	case "text":
		writeTextHTML(sb, node)
	case "hardBreak":
		sb.WriteString("<br>")
	case "paragraph":
		sb.WriteString("<p>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</p>")
	case "heading":
		level := attrInt(node.Attrs, "level", 1)
		if level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(sb, "<h%d>", level)
		writeChildrenHTML(sb, node)
		fmt.Fprintf(sb, "</h%d>", level)
	case "bulletList":
		sb.WriteString("<ul>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</ul>")
	case "orderedList":
		sb.WriteString("<ol>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</ol>")
	case "listItem":
		sb.WriteString("<li>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</li>")
	case "blockquote":
		sb.WriteString("<blockquote>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</blockquote>")
	case "codeBlock":
		sb.WriteString("<pre><code>")
		writeChildrenHTML(sb, node)
		sb.WriteString("</code></pre>")
	case "horizontalRule":
		sb.WriteString("<hr>")
	default:
		writeChildrenHTML(sb, node)
	}
}

func writeChildrenHTML(sb *strings.Builder, node EditorNode) {
	for _, child := range node.Content {
		writeNodeHTML(sb, child)
	}
}

func writeTextHTML(sb *strings.Builder, node EditorNode) {
	open, closeTags := markTags(node.Marks)
	sb.WriteString(open)
	sb.WriteString(html.EscapeString(node.Text))
	sb.WriteString(closeTags)
}

func markTags(marks []EditorMark) (string, string) {
	var open strings.Builder
	closers := make([]string, 0, len(marks))
	for _, mark := range marks {
		switch mark.Type {
		case "bold":
			open.WriteString("<strong>")
			closers = append(closers, "</strong>")
		case "italic":
			open.WriteString("<em>")
			closers = append(closers, "</em>")
		case "underline":
			open.WriteString("<u>")
			closers = append(closers, "</u>")
		case "strike":
			open.WriteString("<s>")
			closers = append(closers, "</s>")
		case "code":
			open.WriteString("<code>")
			closers = append(closers, "</code>")
		case "link":
			href, _ := mark.Attrs["href"].(string)
			fmt.Fprintf(&open, `<a href="%s">`, html.EscapeString(href))
			closers = append(closers, "</a>")
		}
	}
	// closing tags in reverse order of opening
	var closing strings.Builder
	for i := len(closers) - 1; i >= 0; i-- {
		closing.WriteString(closers[i])
	}
	return open.String(), closing.String()
}

func attrInt(attrs map[string]any, key string, fallback int) int {
	if attrs == nil {
		return fallback
	}
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Value implements driver.Valuer, storing the document as JSONB
func (d EditorDoc) Value() (driver.Value, error) {
	if d.Type == "" {
		d.Type = "doc"
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *EditorDoc) Scan(value any) error {
	if value == nil {
		*d = NewEditorDoc()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into EditorDoc", value)
	}
	if len(data) == 0 {
		*d = NewEditorDoc()
		return nil
	}
	doc, err := ParseEditorDoc(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
