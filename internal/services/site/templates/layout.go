package templates

import (
	"context"

	"github.com/a-h/templ"
	sitei18n "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/i18n"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// DiscordURL is the community invite link.
const DiscordURL = "https://discord.gg/5MEu6njksN"

// Nav identifiers used to highlight the active section.
const (
	NavHome     = "home"
	NavEvents   = "events"
	NavHardware = "hardware"
	NavLog      = "log"
	NavApply    = "apply"
	NavShader   = "shader"
)

type navItem struct {
	id   string
	path string
	key  string
}

var navItems = []navItem{
	{id: NavHome, path: routepath.Root, key: "core.nav.home"},
	{id: NavEvents, path: routepath.Events, key: "core.nav.events"},
	{id: NavHardware, path: routepath.Hardware, key: "core.nav.hardware"},
	{id: NavLog, path: routepath.Log, key: "core.nav.log"},
	{id: NavApply, path: routepath.Apply, key: "core.nav.apply"},
	{id: NavShader, path: routepath.Shader, key: "core.nav.shader"},
}

// LayoutOptions configures the page shell.
type LayoutOptions struct {
	Title     string
	Lang      string
	Active    string
	Loc       Localizer
	Languages []sitei18n.LanguageOption
	// Background is an optional image drawn behind the page content.
	Background string
	Scripts    []string
}

// Layout renders the document shell around the children in ctx.
func Layout(opts LayoutOptions) templ.Component {
	return component(func(ctx context.Context, h *html) {
		loc := localizer(opts.Loc)
		brand := loc.Sprintf("core.brand")
		title := brand
		if opts.Title != "" && opts.Title != brand {
			title = opts.Title + " | " + brand
		}
		lang := opts.Lang
		if lang == "" {
			lang = "en-US"
		}

		h.raw("<!doctype html>")
		h.open("html", "lang", lang)
		h.raw("<head>")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", title)
		h.raw(`<link rel="stylesheet" href="`, routepath.StaticPrefix, `css/site.css">`)
		h.raw("</head>")

		h.open("body", "class", classes("page", "page-"+opts.Active))
		if opts.Background != "" {
			h.raw(`<div class="page-background" aria-hidden="true">`)
			h.open("img", "src", opts.Background, "alt", "", "decoding", "async")
			h.raw("</div>")
		}

		h.raw(`<header class="site-header"><nav class="site-nav">`)
		h.open("a", "class", "brand", "href", routepath.Root)
		h.text("> " + brand)
		h.close("a")
		h.raw(`<ul class="nav-links">`)
		for _, item := range navItems {
			h.raw("<li>")
			class := "nav-link"
			if item.id == opts.Active {
				class = "nav-link active"
			}
			h.open("a", "class", class, "href", item.path)
			h.text(loc.Sprintf(item.key))
			h.close("a")
			h.raw("</li>")
		}
		h.raw("</ul>")
		if len(opts.Languages) > 0 {
			h.open("ul", "class", "lang-switch", "aria-label", loc.Sprintf("core.language"))
			for _, option := range opts.Languages {
				h.raw("<li>")
				h.open("a", "href", option.URL, "hreflang", option.Locale, "class", classes("lang", activeClass(option.Active)))
				h.text(option.Label)
				h.close("a")
				h.raw("</li>")
			}
			h.close("ul")
		}
		h.raw("</nav></header>")

		h.raw(`<main class="site-main">`)
		children := templ.GetChildren(ctx)
		h.render(templ.ClearChildren(ctx), children)
		h.raw("</main>")

		h.raw(`<footer class="site-footer">`)
		h.element("p", loc.Sprintf("core.footer.tagline"))
		h.open("a", "href", DiscordURL, "target", "_blank", "rel", "noopener noreferrer")
		h.text(loc.Sprintf("core.footer.discord"))
		h.close("a")
		h.raw("</footer>")

		for _, script := range opts.Scripts {
			h.open("script", "src", script, "defer", "defer")
			h.close("script")
		}
		h.raw("</body></html>")
	})
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}
