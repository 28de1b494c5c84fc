package discovery

import (
	"strings"
	"unicode"
)

// NameHints carries the name-based heuristics discovery runs on. The
// defaults match the host build this overlay targets; a different build
// re-derives them (see DESIGN.md).
type NameHints struct {
	PanelKeywords   []string // substrings that mark a node as a panel
	IgnoreKeywords  []string // substrings that mark a node as decorative
	Placeholders    []string // label strings that carry no meaning
	WidgetAffixes   []string // prefixes/suffixes stripped from node names
	BackMarkerType  string   // type name of the designated back marker
	DismissKeywords []string // substrings of dismiss-button names
	BlendKeyword    string   // substring of the full-screen dismiss node
}

// DefaultHints is the table for the supported host build.
func DefaultHints() NameHints {
	return NameHints{
		PanelKeywords:  []string{"panel", "content", "section"},
		IgnoreKeywords: []string{"scrollbar", "background", "resize", "handle", "hide", "blend", "item", "template"},
		Placeholders:   []string{"toggle", "button", "item", "text", "label", "new text"},
		WidgetAffixes:  []string{"btn", "button", "toggle", "chk", "checkbox", "slider", "dropdown", "input", "txt", "tab"},
		BackMarkerType: "PopupBackButton",
		DismissKeywords: []string{
			"close", "hide", "back", "cancel", "exit", "dismiss",
		},
		BlendKeyword: "blend",
	}
}

func (h NameHints) panelLike(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range h.PanelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (h NameHints) ignored(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range h.IgnoreKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (h NameHints) placeholder(label string) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, p := range h.Placeholders {
		if lower == p {
			return true
		}
	}
	return false
}

// DismissLike reports whether a node name looks like a dismiss button.
func (h NameHints) DismissLike(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range h.DismissKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BlendLike reports whether a node name looks like the full-screen
// click-anywhere dismiss surface.
func (h NameHints) BlendLike(name string) bool {
	return h.BlendKeyword != "" && strings.Contains(strings.ToLower(name), h.BlendKeyword)
}

// CleanName turns an internal node name into spoken words: widget-type
// prefixes and suffixes are stripped, camel case is split, underscores and
// dashes become spaces.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = splitCamel(name)
	words := strings.Fields(name)
	affixes := DefaultHints().WidgetAffixes
	trimmed := words
	for len(trimmed) > 1 && isAffix(trimmed[0], affixes) {
		trimmed = trimmed[1:]
	}
	for len(trimmed) > 1 && isAffix(trimmed[len(trimmed)-1], affixes) {
		trimmed = trimmed[:len(trimmed)-1]
	}
	return strings.Join(trimmed, " ")
}

func isAffix(word string, affixes []string) bool {
	lower := strings.ToLower(word)
	for _, a := range affixes {
		if lower == a {
			return true
		}
	}
	return false
}

func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// numericOnly reports whether a candidate label is just a number, which
// reads as nonsense without context (a slider whose inner text is "42").
func numericOnly(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !strings.ContainsRune(".,:%/- ", r) {
			return false
		}
	}
	return true
}
