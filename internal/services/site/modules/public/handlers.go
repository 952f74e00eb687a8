package public

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"go.uber.org/zap"
)

// HomeTabQueryKey selects the problem/solution tab on the landing page.
const HomeTabQueryKey = "tab"

// homeBackground is the preset rendered behind the landing page.
const homeBackground = "marble"

var showcase = []string{"servers", "gpus", "robots", "experimental", "opensource", "community", "workshops"}

type handlers struct {
	logger *zap.Logger
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{logger: deps.LoggerOrNop()}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	tab := templates.HomeTab(r.URL.Query().Get(HomeTabQueryKey))
	err := pagerender.WritePage(w, r, pagerender.Page{
		Active:     templates.NavHome,
		Background: routepath.ShaderPresetImage(homeBackground, 1280, 720),
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Home(loc, templates.HomeView{Tab: tab, Showcase: showcaseCards(loc)})
		},
	})
	if err != nil {
		h.logger.Error("render home page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}

func showcaseCards(loc templates.Localizer) []templates.ShowcaseCard {
	cards := make([]templates.ShowcaseCard, 0, len(showcase))
	for _, id := range showcase {
		cards = append(cards, templates.ShowcaseCard{
			Title:       loc.Sprintf("site.home.showcase." + id + ".title"),
			Description: loc.Sprintf("site.home.showcase." + id + ".body"),
		})
	}
	return cards
}
