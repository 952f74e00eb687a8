package templates

import (
	"context"

	"github.com/a-h/templ"
)

// LogCard is one rendered log entry.
type LogCard struct {
	ID        string
	Title     string
	Content   string
	Author    string
	Timestamp string
	ISOTime   string
	Type      string
	Tags      []string
}

// Log renders the project log, newest first.
func Log(loc Localizer, entries []LogCard) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.element("h1", loc.Sprintf("site.log.title"), "class", "page-title")
		if len(entries) == 0 {
			h.element("p", loc.Sprintf("site.log.empty"), "class", "empty")
			return
		}
		h.raw(`<ol class="log">`)
		for _, entry := range entries {
			h.open("li", "class", "log-entry log-"+entry.Type, "id", entry.ID)
			h.element("span", entry.Type, "class", "log-type")
			h.element("h2", entry.Title)
			h.raw(`<p class="log-meta">`)
			h.element("time", entry.Timestamp, "datetime", entry.ISOTime)
			h.text(" · " + entry.Author)
			h.raw("</p>")
			h.element("p", entry.Content)
			if len(entry.Tags) > 0 {
				h.raw(`<ul class="tags">`)
				for _, tag := range entry.Tags {
					h.element("li", "#"+tag)
				}
				h.raw("</ul>")
			}
			h.close("li")
		}
		h.raw("</ol>")
	})
}
