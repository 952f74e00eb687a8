package logbook

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"go.uber.org/zap"
)

const timestampLayout = "January 2, 2006"

type handlers struct {
	source module.ContentSource
	logger *zap.Logger
}

func newHandlers(source module.ContentSource, deps module.Dependencies) handlers {
	return handlers{source: source, logger: deps.LoggerOrNop()}
}

func (h handlers) handleLog(w http.ResponseWriter, r *http.Request) {
	cards := logCards(h.source.Snapshot().Log)
	err := pagerender.WritePage(w, r, pagerender.Page{
		TitleKey: "site.log.title",
		Active:   templates.NavLog,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Log(loc, cards)
		},
	})
	if err != nil {
		h.logger.Error("render log page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}

// logCards keeps the snapshot order, which is newest first.
func logCards(entries []content.LogEntry) []templates.LogCard {
	cards := make([]templates.LogCard, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, templates.LogCard{
			ID:        entry.ID,
			Title:     entry.Title,
			Content:   entry.Content,
			Author:    entry.Author,
			Timestamp: entry.Timestamp.UTC().Format(timestampLayout),
			ISOTime:   entry.Timestamp.UTC().Format(time.RFC3339),
			Type:      string(entry.Type),
			Tags:      entry.Tags,
		})
	}
	return cards
}
