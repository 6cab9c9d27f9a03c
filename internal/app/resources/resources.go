// internal/app/resources/resources.go
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// layoutFS holds the page chrome every feature template wraps itself in:
// layout_top/layout_bottom, back_link, and print_top/print_bottom for
// printable meeting pages.
//
//go:embed templates/*.gohtml
var layoutFS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the layout set with the template engine.
// Startup calls it before the engine boots; repeat calls are no-ops.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "layout",
			FS:       layoutFS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}
