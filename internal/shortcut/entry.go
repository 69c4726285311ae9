// Package shortcut registers an installed application with the desktop:
// a launcher on the desktop surface and an entry in the user's
// application menu, both from the same desktop-entry text.
package shortcut

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

// Entry holds the fields of a desktop entry.
type Entry struct {
	Name           string
	Comment        string
	Exec           string // absolute path of the installed executable
	Icon           string
	Terminal       bool
	Type           string
	Categories     []string
	StartupWMClass string
}

// DefaultEntry returns the launcher fields for HyPrism without Exec or Icon.
func DefaultEntry() Entry {
	return Entry{
		Name:           "HyPrism",
		Comment:        "Hytale Launcher",
		Terminal:       false,
		Type:           "Application",
		Categories:     []string{"Game"},
		StartupWMClass: "HyPrism",
	}
}

// TryExec carries the raw path; Exec is quoted when the path needs it.
var entryTemplate = template.Must(template.New("desktop").Funcs(template.FuncMap{
	"exec":       quoteExec,
	"categories": joinCategories,
}).Parse(`[Desktop Entry]
Name={{.Name}}
Comment={{.Comment}}
Exec={{exec .Exec}}
TryExec={{.Exec}}
Icon={{.Icon}}
Terminal={{.Terminal}}
Type={{.Type}}
Categories={{categories .Categories}}
StartupWMClass={{.StartupWMClass}}
`))

// Render returns the desktop-entry text for e.
func Render(e Entry) ([]byte, error) {
	if e.Exec == "" {
		return nil, fmt.Errorf("render desktop entry: exec path is empty")
	}
	if !filepath.IsAbs(e.Exec) {
		return nil, fmt.Errorf("render desktop entry: exec path %q is not absolute", e.Exec)
	}
	if e.Type == "" {
		e.Type = "Application"
	}

	var buf bytes.Buffer
	if err := entryTemplate.Execute(&buf, e); err != nil {
		return nil, fmt.Errorf("render desktop entry: %w", err)
	}
	return buf.Bytes(), nil
}

// joinCategories renders categories as a semicolon-terminated list.
func joinCategories(categories []string) string {
	var sb strings.Builder
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		sb.WriteString(c)
		sb.WriteString(";")
	}
	return sb.String()
}

// execReplacer escapes a path inside a quoted Exec argument. The desktop
// entry format applies backslash escaping twice: once for the quoted
// argument and once for the string value.
var execReplacer = strings.NewReplacer(
	`\`, `\\\\`,
	`"`, `\\"`,
	"`", "\\\\`",
	`$`, `\\$`,
	`%`, `%%`,
)

// quoteExec quotes p for the Exec key if it contains reserved characters.
func quoteExec(p string) string {
	if !strings.ContainsAny(p, " \t\n\"'\\><~|&;$*?#()`%") {
		return p
	}
	return `"` + execReplacer.Replace(p) + `"`
}
