// internal/app/features/signup/handler.go
package signup

import (
	"net/http"

	"github.com/dalemusser/activityhub/internal/app/system/visitor"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the signup widget.
type Handler struct {
	Renderer   *Renderer
	Controller *Controller
	Board      *Board
	Log        *zap.Logger
}

func NewHandler(renderer *Renderer, controller *Controller, board *Board, logger *zap.Logger) *Handler {
	return &Handler{
		Renderer:   renderer,
		Controller: controller,
		Board:      board,
		Log:        logger,
	}
}

type widgetData struct {
	View  View
	Draft Draft

	Message     Message
	HasMessage  bool
	RemainingMS int64

	NoParticipantsText string
}

type pageData struct {
	Title string
	widgetData
}

func (h *Handler) widgetFor(r *http.Request, view View) widgetData {
	vid := visitor.ID(r.Context())
	data := widgetData{
		View:               view,
		Draft:              h.Board.Draft(vid),
		NoParticipantsText: NoParticipantsText,
	}
	if msg, ok := h.Board.Current(vid); ok {
		data.Message = msg
		data.HasMessage = true
		data.RemainingMS = msg.RemainingAt(h.Board.Now()).Milliseconds()
	}
	return data
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – full page, GET /widget – HTMX partial                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	view := h.Renderer.Refresh(r.Context())
	templates.Render(w, r, "signup_page", pageData{
		Title:      "Extracurricular Activities",
		widgetData: h.widgetFor(r, view),
	})
}

func (h *Handler) ServeWidget(w http.ResponseWriter, r *http.Request) {
	view := h.Renderer.Refresh(r.Context())
	templates.RenderSnippet(w, "signup_widget", h.widgetFor(r, view))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /signup                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// The email goes to the store as typed; the store normalises it.
	activity := r.PostFormValue("activity")
	email := r.PostFormValue("email")

	h.Controller.Signup(r.Context(), visitor.ID(r.Context()), activity, email)
	h.respond(w, r)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /participants/remove                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRemove is the one handler behind every roster row's remove button.
// The button submits a key naming the activity and the participant.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	vid := visitor.ID(r.Context())

	activity, email, ok := parseRemovalKey(r.PostFormValue("key"))
	if !ok {
		h.Log.Warn("malformed removal key", zap.String("key", r.PostFormValue("key")))
		h.Board.Show(vid, msgRemovalRejected, StatusError, h.Controller.RemovalTTL)
		h.respond(w, r)
		return
	}

	h.Controller.RemoveParticipant(r.Context(), vid, activity, email)
	h.respond(w, r)
}

// respond sends HTMX callers the current widget and plain form posts back
// to the page.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "signup_widget", h.widgetFor(r, h.Renderer.Current()))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
