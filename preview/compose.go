// Package preview composes extracted code buckets into one renderable
// document for sandboxed display.
//
// The output is handed to an isolated iframe, never executed in the host
// page. Model-authored markup is embedded verbatim: escaping it would
// corrupt the document, so isolation comes from the sandbox, not from
// sanitization.
package preview

import "strings"

// SandboxAttrs is the iframe sandbox token list for the preview surface.
// Scripts, same-origin storage, forms and modal dialogs are permitted;
// top-level navigation and arbitrary popups are not.
const SandboxAttrs = "allow-scripts allow-same-origin allow-forms allow-modals"

// errorListener reports uncaught runtime errors into the preview document
// so script failures are visible instead of silently blank.
const errorListener = `window.addEventListener('error', function (e) {
  var box = document.createElement('pre');
  box.style.cssText = 'position:fixed;bottom:0;left:0;right:0;margin:0;padding:8px 12px;background:#fee;color:#900;font:12px monospace;border-top:1px solid #c99;white-space:pre-wrap;';
  box.textContent = 'Error: ' + e.message + (e.lineno ? ' (line ' + e.lineno + ')' : '');
  document.body.appendChild(box);
});`

// Buckets is the composable content, one slot per recognized tag.
type Buckets struct {
	HTML string
	CSS  string
	JS   string
}

// Compose merges buckets into a single standalone document string.
//
// If the HTML bucket already carries a full document (both top-level
// document tags present) and the other buckets are empty, it is returned
// unchanged. Otherwise a minimal document is synthesized around the
// buckets; the result is always independently renderable, whichever
// buckets are empty.
func Compose(b Buckets) string {
	if b.CSS == "" && b.JS == "" && isFullDocument(b.HTML) {
		return b.HTML
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	doc.WriteString("<meta charset=\"UTF-8\">\n")
	doc.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	doc.WriteString("<style>\n")
	doc.WriteString(b.CSS)
	doc.WriteString("\n</style>\n</head>\n<body>\n")
	doc.WriteString(b.HTML)
	doc.WriteString("\n<script>\n")
	doc.WriteString(errorListener)
	doc.WriteString("\n")
	doc.WriteString(b.JS)
	doc.WriteString("\n</script>\n</body>\n</html>")
	return doc.String()
}

// isFullDocument reports whether markup is already a standalone document.
func isFullDocument(markup string) bool {
	lower := strings.ToLower(markup)
	return strings.Contains(lower, "<html") && strings.Contains(lower, "</html>")
}
