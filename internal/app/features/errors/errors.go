// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// Choice is one candidate on the disambiguation page.
type Choice struct {
	Label string
	URL   string
}

type choicesData struct {
	viewdata.BaseVM
	Message string
	Choices []Choice
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "The page you asked for does not exist.", "/")
}

// RenderNotFound renders the 404 page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderStatus(w, r, http.StatusNotFound, "Not found", msg, backURL)
}

// RenderServerError renders the 500 page with a user-facing message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderStatus(w, r, http.StatusInternalServerError, "Something went wrong", msg, backURL)
}

// RenderChoices renders the 300 Multiple Choices page listing the
// records an ambiguous URL could mean.
func RenderChoices(w http.ResponseWriter, r *http.Request, msg, backURL string, choices []Choice) {
	data := choicesData{
		BaseVM:  viewdata.NewBaseVM(r, "Which one?", backURL),
		Message: msg,
		Choices: choices,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusMultipleChoices)
	templates.Render(w, r, "error_choices", data)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
