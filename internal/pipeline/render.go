package pipeline

// Block bracketing tags.
const (
	FenceMarker = "```"
	PreOpen     = "<pre>"
	PreClose    = "</pre>"
	ListOpen    = "<ul>"
	ListClose   = "</ul>"
)

// Render returns the HTML fragment for a classified line.
// Content is passed through unescaped: callers handling untrusted input must
// sanitize it upstream.
func Render(l Line) string {
	switch l.Kind {
	case Heading1:
		return "<h1>" + l.Text + "</h1>"
	case Heading2:
		return "<h2>" + l.Text + "</h2>"
	case Heading3:
		return "<h3>" + l.Text + "</h3>"
	case ListItem:
		return "<li>" + l.Text + "</li>"
	case Quote:
		return "<blockquote>" + l.Text + "</blockquote>"
	case Link:
		return `<a href="` + l.Href + `">` + l.Label + "</a><br>"
	default:
		return "<p>" + l.Text + "</p>"
	}
}
