package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// EventCard is one rendered event.
type EventCard struct {
	Name        string
	Date        string
	Time        string
	Address     string
	Description string
	CoverURL    string
	URL         string
}

// EventsView is the data for the events page.
type EventsView struct {
	Past        bool
	Upcoming    []EventCard
	Previous    []EventCard
	Unavailable bool
}

// Events renders the events page body with upcoming and past tabs.
func Events(loc Localizer, view EventsView) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.element("h1", loc.Sprintf("site.events.title"), "class", "page-title")

		h.raw(`<nav class="tabs">`)
		h.open("a", "class", classes("tab", activeClass(!view.Past)), "href", routepath.EventsTab(""))
		h.text(loc.Sprintf("site.events.upcoming") + " (" + itoa(len(view.Upcoming)) + ")")
		h.close("a")
		h.open("a", "class", classes("tab", activeClass(view.Past)), "href", routepath.EventsTab(routepath.EventsTabPast))
		h.text(loc.Sprintf("site.events.past") + " (" + itoa(len(view.Previous)) + ")")
		h.close("a")
		h.raw("</nav>")

		if view.Unavailable {
			h.element("p", loc.Sprintf("site.events.unavailable"), "class", "notice error")
			return
		}

		cards, emptyKey := view.Upcoming, "site.events.empty.upcoming"
		if view.Past {
			cards, emptyKey = view.Previous, "site.events.empty.past"
		}
		if len(cards) == 0 {
			h.element("p", loc.Sprintf(emptyKey), "class", "empty")
			return
		}
		h.raw(`<ul class="event-list">`)
		for _, card := range cards {
			h.open("li", "class", classes("event", pastClass(view.Past)))
			if card.URL != "" {
				h.open("a", "class", "event-link", "href", card.URL, "target", "_blank", "rel", "noopener noreferrer")
			}
			if card.CoverURL != "" {
				h.open("img", "class", "event-cover", "src", card.CoverURL, "alt", card.Name, "loading", "lazy")
			}
			h.raw(`<div class="event-body">`)
			h.element("h3", card.Name)
			h.raw(`<p class="event-meta">`)
			h.element("span", card.Date, "class", "event-date")
			h.element("span", card.Time, "class", "event-time")
			if card.Address != "" {
				h.element("span", card.Address, "class", "event-address")
			}
			h.raw("</p>")
			if card.Description != "" {
				h.element("p", card.Description, "class", "event-description")
			}
			h.raw("</div>")
			if card.URL != "" {
				h.close("a")
			}
			h.close("li")
		}
		h.raw("</ul>")
	})
}

func pastClass(past bool) string {
	if past {
		return "past"
	}
	return ""
}
