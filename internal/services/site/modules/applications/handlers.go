package applications

import (
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 64 << 10

	// SubmittedQueryKey marks the post-redirect success view of the form.
	SubmittedQueryKey = "submitted"
)

// submitResponse is the JSON API envelope.
type submitResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	ID      string  `json:"id,omitempty"`
	Errors  []Issue `json:"errors,omitempty"`
}

type handlers struct {
	service service
	logger  *zap.Logger
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, logger: deps.LoggerOrNop()}
}

func (h handlers) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		_ = httpx.WriteJSON(w, http.StatusBadRequest, submitResponse{Message: "Invalid JSON body"})
		return
	}
	input, typeIssues, err := decodeJSON(data)
	if err != nil {
		_ = httpx.WriteJSON(w, http.StatusBadRequest, submitResponse{Message: "Invalid JSON body"})
		return
	}
	if len(typeIssues) > 0 {
		issues := mergeIssues(typeIssues, validate(input))
		_ = httpx.WriteJSON(w, http.StatusBadRequest, submitResponse{Message: "Validation error", Errors: issues})
		return
	}

	id, err := h.service.submit(r.Context(), input)
	var invalid *ValidationError
	switch {
	case errors.As(err, &invalid):
		_ = httpx.WriteJSON(w, http.StatusBadRequest, submitResponse{Message: "Validation error", Errors: invalid.Issues})
	case err != nil:
		h.logger.Error("create application", zap.Error(err))
		_ = httpx.WriteJSON(w, http.StatusInternalServerError, submitResponse{Message: "Internal server error"})
	default:
		h.logger.Info("application submitted", zap.String("application_id", id))
		_ = httpx.WriteJSON(w, http.StatusCreated, submitResponse{Success: true, Message: "Application submitted successfully", ID: id})
	}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	view := templates.ApplyView{Success: r.URL.Query().Get(SubmittedQueryKey) != ""}
	h.writeForm(w, r, http.StatusOK, view)
}

func (h handlers) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.writeForm(w, r, http.StatusBadRequest, templates.ApplyView{Failure: true})
		return
	}
	input := Input{
		FullName:   r.PostForm.Get("fullName"),
		Email:      r.PostForm.Get("email"),
		Phone:      r.PostForm.Get("phone"),
		Interest:   r.PostForm.Get("interest"),
		Experience: r.PostForm.Get("experience"),
		Newsletter: checked(r.PostForm.Get("newsletter")),
	}
	values := templates.ApplyValues(input)

	id, err := h.service.submit(r.Context(), input)
	var invalid *ValidationError
	switch {
	case errors.As(err, &invalid):
		h.writeForm(w, r, http.StatusBadRequest, templates.ApplyView{Values: values, Errors: invalid.Fields()})
	case err != nil:
		h.logger.Error("create application", zap.Error(err))
		h.writeForm(w, r, http.StatusInternalServerError, templates.ApplyView{Values: values, Failure: true})
	default:
		h.logger.Info("application submitted", zap.String("application_id", id))
		httpx.WriteRedirect(w, r, routepath.Apply+"?"+SubmittedQueryKey+"=1")
	}
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, view templates.ApplyView) {
	err := pagerender.WritePage(w, r, pagerender.Page{
		TitleKey:   "site.apply.title",
		StatusCode: status,
		Active:     templates.NavApply,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Apply(loc, view)
		},
	})
	if err != nil {
		h.logger.Error("render apply page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}

func checked(value string) bool {
	switch value {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// mergeIssues appends content issues for fields that decoded cleanly.
func mergeIssues(typeIssues, contentIssues []Issue) []Issue {
	out := slices.Clone(typeIssues)
	for _, issue := range contentIssues {
		flagged := slices.ContainsFunc(typeIssues, func(existing Issue) bool {
			return slices.Equal(existing.Path, issue.Path)
		})
		if !flagged {
			out = append(out, issue)
		}
	}
	return out
}
