package render

import "strings"

type Theme struct {
	Line       string
	Note       string
	Text       string
	Background string
}

var (
	Light = Theme{Line: "#333", Note: "#333", Text: "#666", Background: "#fff"}
	Dark  = Theme{Line: "#888", Note: "#fff", Text: "#aaa", Background: "#1a1a1a"}
)

// ThemeByName returns Dark for "dark" and Light for anything else.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "dark") {
		return Dark
	}
	return Light
}
