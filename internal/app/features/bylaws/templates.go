// internal/app/features/bylaws/templates.go
package bylaws

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "bylaws",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
