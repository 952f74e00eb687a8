package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// ApplyValues are the submitted form values echoed back on error.
type ApplyValues struct {
	FullName   string
	Email      string
	Phone      string
	Interest   string
	Experience string
	Newsletter bool
}

// ApplyView is the data for the membership application page.
type ApplyView struct {
	Values  ApplyValues
	Errors  map[string]string
	Success bool
	Failure bool
}

// Apply renders the membership application form.
func Apply(loc Localizer, view ApplyView) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.element("h1", loc.Sprintf("site.apply.title"), "class", "page-title")

		if view.Success {
			h.raw(`<div class="notice success" role="status">`)
			h.element("h2", loc.Sprintf("site.apply.success.title"))
			h.element("p", loc.Sprintf("site.apply.success.body"))
			h.open("a", "class", "button", "href", DiscordURL, "target", "_blank", "rel", "noopener noreferrer")
			h.text(loc.Sprintf("core.footer.discord"))
			h.close("a")
			h.raw("</div>")
			return
		}

		h.element("p", loc.Sprintf("site.apply.intro"), "class", "lead")
		if view.Failure {
			h.element("p", loc.Sprintf("site.apply.failure"), "class", "notice error", "role", "alert")
		}

		h.open("form", "class", "apply-form", "method", "post", "action", routepath.Apply, "novalidate", "novalidate")
		field(h, loc, view, "fullName", "text", view.Values.FullName, true)
		field(h, loc, view, "email", "email", view.Values.Email, true)
		field(h, loc, view, "phone", "tel", view.Values.Phone, false)
		textarea(h, loc, view, "interest", view.Values.Interest, true)
		textarea(h, loc, view, "experience", view.Values.Experience, false)

		h.raw(`<label class="checkbox">`)
		h.raw(`<input type="checkbox" name="newsletter" value="true"`)
		h.flag("checked", view.Values.Newsletter)
		h.raw(">")
		h.text(loc.Sprintf("site.apply.newsletter"))
		h.raw("</label>")

		h.open("button", "class", "button primary", "type", "submit")
		h.text(loc.Sprintf("site.apply.submit"))
		h.close("button")
		h.close("form")
	})
}

func field(h *html, loc Localizer, view ApplyView, name, kind, value string, required bool) {
	message := view.Errors[name]
	h.open("div", "class", classes("field", invalidClass(message)))
	h.open("label", "for", name)
	h.text(loc.Sprintf("site.apply." + name))
	h.close("label")
	h.raw("<input")
	h.attr("id", name)
	h.attr("name", name)
	h.attr("type", kind)
	h.attr("value", value)
	h.flag("required", required)
	if message != "" {
		h.attr("aria-invalid", "true")
	}
	h.raw(">")
	fieldError(h, message)
	h.close("div")
}

func textarea(h *html, loc Localizer, view ApplyView, name, value string, required bool) {
	message := view.Errors[name]
	h.open("div", "class", classes("field", invalidClass(message)))
	h.open("label", "for", name)
	h.text(loc.Sprintf("site.apply." + name))
	h.close("label")
	h.raw("<textarea")
	h.attr("id", name)
	h.attr("name", name)
	h.attr("rows", "4")
	h.flag("required", required)
	if message != "" {
		h.attr("aria-invalid", "true")
	}
	h.raw(">")
	h.text(value)
	h.close("textarea")
	fieldError(h, message)
	h.close("div")
}

func fieldError(h *html, message string) {
	if message == "" {
		return
	}
	h.element("p", message, "class", "field-error")
}

func invalidClass(message string) string {
	if message != "" {
		return "invalid"
	}
	return ""
}
