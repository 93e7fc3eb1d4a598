// Package codeblock extracts fenced code blocks from assistant text.
//
// Model replies interleave prose with triple-backtick fenced regions. This
// package splits such text into ordered segments (plain text or code) with
// an explicit lexer so the unterminated-fence case is a real state, not a
// regex artifact. Plain runs are preserved verbatim; each segment also
// carries its raw source span, so concatenating Raw over all segments
// reconstructs the input exactly.
package codeblock

import (
	"strings"

	"github.com/google/uuid"
)

const fence = "```"

// Kind discriminates segment variants.
type Kind int

const (
	// KindText is a plain-text run between fences.
	KindText Kind = iota
	// KindCode is a well-formed fenced region.
	KindCode
)

// CodeBlock is one fenced region, tagged by its declared language.
type CodeBlock struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Segment is either a plain-text run or a code block, in source order.
type Segment struct {
	Kind  Kind
	Raw   string    // exact source span, fences included for code
	Text  string    // plain text, KindText only
	Block CodeBlock // parsed block, KindCode only
}

// Extract splits text into ordered plain-text and code segments.
//
// A fenced region opens with ``` followed by an optional language token on
// the same line and closes at the next ```. The token is lowercased; a
// missing token defaults to "text". An unterminated fence degrades to plain
// text (no partial-block rendering), merged into the preceding text run
// when one is adjacent.
func Extract(text string) []Segment {
	var segments []Segment

	appendText := func(raw string) {
		if raw == "" {
			return
		}
		if n := len(segments); n > 0 && segments[n-1].Kind == KindText {
			segments[n-1].Raw += raw
			segments[n-1].Text += raw
			return
		}
		segments = append(segments, Segment{Kind: KindText, Raw: raw, Text: raw})
	}

	pos := 0
	for pos < len(text) {
		open := strings.Index(text[pos:], fence)
		if open < 0 {
			appendText(text[pos:])
			break
		}
		open += pos

		// Language token runs to the end of the opening line.
		langEnd := strings.IndexByte(text[open+len(fence):], '\n')
		if langEnd < 0 {
			// Fence opened with no body before end of input.
			appendText(text[pos:])
			break
		}
		langEnd += open + len(fence)

		codeStart := langEnd + 1
		closing := strings.Index(text[codeStart:], fence)
		if closing < 0 {
			// Unterminated fence: whole remaining run is plain text.
			appendText(text[pos:])
			break
		}
		closing += codeStart

		appendText(text[pos:open])

		lang := strings.ToLower(strings.TrimSpace(text[open+len(fence) : langEnd]))
		if lang == "" {
			lang = "text"
		}

		segments = append(segments, Segment{
			Kind: KindCode,
			Raw:  text[open : closing+len(fence)],
			Block: CodeBlock{
				ID:       uuid.NewString(),
				Language: lang,
				Code:     text[codeStart:closing],
			},
		})

		pos = closing + len(fence)
	}

	return segments
}

// Blocks returns only the code blocks of text, in original order.
func Blocks(text string) []CodeBlock {
	var blocks []CodeBlock
	for _, seg := range Extract(text) {
		if seg.Kind == KindCode {
			blocks = append(blocks, seg.Block)
		}
	}
	return blocks
}

// Buckets aggregates code by preview role. Only the three recognized tags
// participate in the combined preview; blocks with any other tag are still
// displayed individually but never composed.
type Buckets struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// IsEmpty reports whether no bucket holds content.
func (b Buckets) IsEmpty() bool {
	return b.HTML == "" && b.CSS == "" && b.JS == ""
}

// Bucketize groups blocks into preview buckets. Multiple blocks with the
// same tag are concatenated in order of appearance, newline-separated.
// Models commonly tag scripting fences "javascript" rather than "js"
// despite instructions, so the usual aliases map into the buckets too.
func Bucketize(blocks []CodeBlock) Buckets {
	var b Buckets
	join := func(existing, code string) string {
		if existing == "" {
			return code
		}
		return existing + "\n" + code
	}
	for _, block := range blocks {
		switch block.Language {
		case "html", "htm":
			b.HTML = join(b.HTML, block.Code)
		case "css":
			b.CSS = join(b.CSS, block.Code)
		case "js", "javascript":
			b.JS = join(b.JS, block.Code)
		}
	}
	return b
}
