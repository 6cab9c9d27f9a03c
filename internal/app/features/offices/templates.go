// internal/app/features/offices/templates.go
package offices

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "offices",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
