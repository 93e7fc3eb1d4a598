// Syntax highlighting for individual code block display (chroma-based).

package codeblock

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// Highlight renders a code block as standalone HTML with inline styles.
// An unknown language tag falls back to content analysis, then to plain
// text; highlighting never fails the caller, it degrades to escaped code.
func Highlight(block CodeBlock) string {
	lexer := lexers.Get(block.Language)
	if lexer == nil {
		lexer = lexers.Analyse(block.Code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := html.New(html.WithClasses(false), html.TabWidth(4))

	iterator, err := lexer.Tokenise(nil, block.Code)
	if err != nil {
		return "<pre>" + escape(block.Code) + "</pre>"
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "<pre>" + escape(block.Code) + "</pre>"
	}
	return buf.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
