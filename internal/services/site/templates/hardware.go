package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// CategoryFilter is one toggleable category chip.
type CategoryFilter struct {
	Name     string
	Selected bool
	// URL toggles this category while keeping the rest of the filter.
	URL string
}

// HardwareCard is one rendered hardware item.
type HardwareCard struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Status      string
	Categories  []string
	Details     []string
}

// HardwareView is the data for the hardware catalog page.
type HardwareView struct {
	Query      string
	Selected   []string
	Categories []CategoryFilter
	Items      []HardwareCard
	Total      int
}

// Hardware renders the searchable hardware catalog.
func Hardware(loc Localizer, view HardwareView) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.element("h1", loc.Sprintf("site.hardware.title"), "class", "page-title")

		h.open("form", "class", "hardware-search", "method", "get", "action", routepath.Hardware)
		h.open("input",
			"type", "search",
			"name", routepath.HardwareQueryKey,
			"value", view.Query,
			"placeholder", loc.Sprintf("site.hardware.search"),
			"aria-label", loc.Sprintf("site.hardware.search"),
		)
		for _, selected := range view.Selected {
			h.open("input", "type", "hidden", "name", routepath.HardwareCategoryKey, "value", selected)
		}
		h.close("form")

		h.open("ul", "class", "category-filter", "aria-label", loc.Sprintf("site.hardware.filter"))
		for _, category := range view.Categories {
			h.raw("<li>")
			h.open("a", "class", classes("chip", activeClass(category.Selected)), "href", category.URL)
			h.text(category.Name)
			h.close("a")
			h.raw("</li>")
		}
		h.close("ul")

		h.element("p", loc.Sprintf("site.hardware.count", len(view.Items), view.Total), "class", "result-count")

		if len(view.Items) == 0 {
			h.raw(`<div class="empty">`)
			h.element("p", loc.Sprintf("site.hardware.empty"))
			h.open("a", "class", "button", "href", routepath.Hardware)
			h.text(loc.Sprintf("site.hardware.clear"))
			h.close("a")
			h.raw("</div>")
			return
		}

		h.raw(`<ul class="card-grid hardware-grid">`)
		for _, item := range view.Items {
			h.open("li", "class", "card hardware", "id", item.ID)
			if item.ImageURL != "" {
				h.open("img", "src", item.ImageURL, "alt", item.Name, "loading", "lazy", "decoding", "async", "width", "128", "height", "128")
			}
			h.element("h3", item.Name)
			if item.Status != "" && item.Status != "available" {
				h.element("span", loc.Sprintf("site.hardware.status."+item.Status), "class", "badge badge-"+item.Status)
			}
			h.element("p", item.Description)
			if len(item.Details) > 0 {
				h.raw(`<ul class="details">`)
				for _, detail := range item.Details {
					h.element("li", detail)
				}
				h.raw("</ul>")
			}
			h.close("li")
		}
		h.raw("</ul>")
	})
}
