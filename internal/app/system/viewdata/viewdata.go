// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
)

// DefaultSiteName is shown in the header until SetSiteName is called.
const DefaultSiteName = "govhub"

var siteName atomic.Value

// SetSiteName sets the site name shown on every page. Bootstrap calls it
// once from the site_name config value.
func SetSiteName(name string) {
	if name == "" {
		name = DefaultSiteName
	}
	siteName.Store(name)
}

// SiteName returns the configured site name.
func SiteName() string {
	if s, ok := siteName.Load().(string); ok {
		return s
	}
	return DefaultSiteName
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Year        int // footer copyright year
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    SiteName(),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
	}
}
