package events

import (
	"context"
	"errors"
	"time"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/integration/luma"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
)

const (
	calendarNotConfiguredMessage = "Calendar ID not configured"
	fetchFailedMessage           = "Failed to fetch events"
)

type service struct {
	source module.EventSource
	now    func() time.Time
}

func newService(deps module.Dependencies) service {
	return service{source: deps.Events, now: deps.Clock()}
}

// list returns the calendar entries, mapping failures to typed errors whose
// public messages match the API contract.
func (s service) list(ctx context.Context) ([]luma.Entry, error) {
	if s.source == nil || !s.source.CalendarConfigured() {
		return nil, apperrors.E(apperrors.KindUnknown, calendarNotConfiguredMessage)
	}
	entries, err := s.source.ListEvents(ctx)
	if err != nil {
		if errors.Is(err, luma.ErrCalendarNotConfigured) {
			return nil, apperrors.Wrap(apperrors.KindUnknown, calendarNotConfiguredMessage, err)
		}
		return nil, apperrors.Wrap(apperrors.KindUnknown, fetchFailedMessage, err)
	}
	if entries == nil {
		entries = []luma.Entry{}
	}
	return entries, nil
}

func (s service) view(ctx context.Context, past bool) (templates.EventsView, error) {
	view := templates.EventsView{Past: past}
	entries, err := s.list(ctx)
	if err != nil {
		view.Unavailable = true
		return view, err
	}
	upcoming, previous := luma.Split(entries, s.now())
	view.Upcoming = cards(upcoming)
	view.Previous = cards(previous)
	return view, nil
}

func cards(entries []luma.Entry) []templates.EventCard {
	out := make([]templates.EventCard, 0, len(entries))
	for _, entry := range entries {
		description, _ := luma.Truncate(entry.Event.Description, luma.DescriptionLimit)
		out = append(out, templates.EventCard{
			Name:        entry.Event.Name,
			Date:        luma.FormatDate(entry),
			Time:        luma.FormatTime(entry),
			Address:     entry.Address(),
			Description: description,
			CoverURL:    entry.Event.CoverURL,
			URL:         entry.Event.URL,
		})
	}
	return out
}
