package hardware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"go.uber.org/zap"
)

const imageWidth = 256

type handlers struct {
	source module.ContentSource
	logger *zap.Logger
}

func newHandlers(source module.ContentSource, deps module.Dependencies) handlers {
	return handlers{source: source, logger: deps.LoggerOrNop()}
}

func (h handlers) handleCatalog(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get(routepath.HardwareQueryKey))
	selected := selectedCategories(r.URL.Query()[routepath.HardwareCategoryKey])
	view := catalogView(h.source.Snapshot().Hardware, query, selected)

	err := pagerender.WritePage(w, r, pagerender.Page{
		TitleKey: "site.hardware.title",
		Active:   templates.NavHardware,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Hardware(loc, view)
		},
	})
	if err != nil {
		h.logger.Error("render hardware page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}

func catalogView(items []content.HardwareItem, query string, selected []string) templates.HardwareView {
	categories := content.Categories(items)
	filters := make([]templates.CategoryFilter, 0, len(categories))
	for _, category := range categories {
		active := slices.Contains(selected, category)
		filters = append(filters, templates.CategoryFilter{
			Name:     category,
			Selected: active,
			URL:      routepath.HardwareSearch(query, toggle(selected, category)),
		})
	}

	matches := content.FilterHardware(items, query, selected)
	cards := make([]templates.HardwareCard, 0, len(matches))
	for _, item := range matches {
		cards = append(cards, templates.HardwareCard{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    content.ImageURL(item.CloudinaryPublicID, imageWidth),
			Status:      string(item.Status),
			Categories:  item.Categories,
			Details:     item.Details,
		})
	}

	return templates.HardwareView{
		Query:      query,
		Selected:   selected,
		Categories: filters,
		Items:      cards,
		Total:      len(items),
	}
}

// selectedCategories trims, dedupes and sorts the requested categories.
func selectedCategories(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" && !slices.Contains(out, value) {
			out = append(out, value)
		}
	}
	slices.Sort(out)
	return out
}

// toggle returns selected with category added or removed.
func toggle(selected []string, category string) []string {
	if slices.Contains(selected, category) {
		return slices.DeleteFunc(slices.Clone(selected), func(value string) bool { return value == category })
	}
	next := append(slices.Clone(selected), category)
	slices.Sort(next)
	return next
}
