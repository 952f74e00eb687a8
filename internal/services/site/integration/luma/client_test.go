package luma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func entryJSON(id, name, start string) string {
	return fmt.Sprintf(`{"api_id":%q,"event":{"name":%q,"start_at":%q,"url":"https://lu.ma/%s","extra":{"nested":true}}}`, id, name, start, id)
}

func pageJSON(hasMore bool, cursor string, entries ...string) string {
	return fmt.Sprintf(`{"entries":[%s],"has_more":%t,"next_cursor":%q}`, strings.Join(entries, ","), hasMore, cursor)
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.APIID)
	}
	return ids
}

func TestListEventsPaginatesAndFilters(t *testing.T) {
	t.Parallel()

	var requests []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.URL.RawQuery)
		mu.Unlock()
		if r.URL.Path != "/v1/calendar/list-events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-luma-api-key"); got != "key" {
			t.Errorf("api key header = %q, want %q", got, "key")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("accept header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("calendar_api_id") != "cal-1" || q.Get("after") != "2026-01-01T00:00:00.000Z" || q.Get("pagination_limit") != "100" {
			t.Errorf("query = %v", q)
		}
		switch q.Get("pagination_cursor") {
		case "":
			_, _ = fmt.Fprint(w, pageJSON(true, "next",
				entryJSON("evt-1", "Thinkin Rocks Hack Night", "2026-02-10T16:00:00.000Z"),
				entryJSON("evt-2", "Unrelated meetup", "2026-02-11T16:00:00.000Z"),
			))
		case "next":
			_, _ = fmt.Fprint(w, pageJSON(false, "",
				entryJSON("evt-3", "ROCKS workshop", "2026-03-01T10:00:00.000Z"),
				entryJSON("evt-4", "Thinkin in 2025", "2025-12-31T23:59:59.000Z"),
				entryJSON("evt-5", "Thinkin with bad date", "soon"),
			))
		default:
			t.Errorf("unexpected cursor %q", q.Get("pagination_cursor"))
		}
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", CalendarID: "cal-1", BaseURL: srv.URL}, WithHTTPClient(srv.Client()))
	entries, err := client.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if diff := cmp.Diff([]string{"evt-1", "evt-3"}, entryIDs(entries)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if len(requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(requests))
	}
}

func TestListEventsStopsAfterMaxPages(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		_, _ = fmt.Fprint(w, pageJSON(true, fmt.Sprintf("c%d", n),
			entryJSON(fmt.Sprintf("evt-%d", n), "thinkin", "2026-05-01T00:00:00Z"),
		))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", CalendarID: "cal", BaseURL: srv.URL}, WithHTTPClient(srv.Client()))
	entries, err := client.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if got := hits.Load(); got != maxPages {
		t.Fatalf("hits = %d, want %d", got, maxPages)
	}
	if len(entries) != maxPages {
		t.Fatalf("entries = %d, want %d", len(entries), maxPages)
	}
}

func TestListEventsReturnsUpstreamErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", CalendarID: "cal", BaseURL: srv.URL}, WithHTTPClient(srv.Client()))
	_, err := client.ListEvents(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("ListEvents() error = %v, want 502 error", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}
}

func TestListEventsConfiguration(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{APIKey: "key", CalendarID: "your-calendar-id"})
	if client.CalendarConfigured() {
		t.Fatal("placeholder calendar id should count as unset")
	}
	if _, err := client.ListEvents(context.Background()); err != ErrCalendarNotConfigured {
		t.Fatalf("ListEvents() error = %v, want %v", err, ErrCalendarNotConfigured)
	}

	client = NewClient(Config{APIKey: "your-luma-api-key-here", CalendarID: "cal"})
	entries, err := client.ListEvents(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("ListEvents() = %v, %v, want empty", entries, err)
	}
}

func TestEntryMarshalPreservesPayload(t *testing.T) {
	t.Parallel()

	var entry Entry
	raw := entryJSON("evt-9", "Thinkin", "2026-04-01T12:00:00Z")
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"extra":{"nested":true}`) {
		t.Fatalf("encoded = %s, want passthrough field", encoded)
	}
}

func TestFilterSiteEventsMatchesAnyField(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{APIID: "a", Event: Event{Name: "Meetup", StartAt: "2026-06-01T00:00:00Z", URL: "https://thinkin.rocks/x"}},
		{APIID: "b", Event: Event{Name: "Meetup", StartAt: "2026-06-01T00:00:00Z"}},
	}
	if diff := cmp.Diff([]string{"a"}, entryIDs(FilterSiteEvents(entries))); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitOrdersUpcomingAndPast(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{APIID: "past-old", Event: Event{StartAt: "2026-01-10T00:00:00Z"}},
		{APIID: "future-late", Event: Event{StartAt: "2026-09-01T00:00:00Z"}},
		{APIID: "past-recent", Event: Event{StartAt: "2026-05-30T00:00:00Z"}},
		{APIID: "now", Event: Event{StartAt: "2026-06-01T12:00:00Z"}},
		{APIID: "broken", Event: Event{StartAt: "tomorrow"}},
	}
	upcoming, past := Split(entries, now)
	if diff := cmp.Diff([]string{"now", "future-late"}, entryIDs(upcoming)); diff != "" {
		t.Fatalf("upcoming mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"past-recent", "past-old"}, entryIDs(past)); diff != "" {
		t.Fatalf("past mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatDateAndTime(t *testing.T) {
	t.Parallel()

	entry := Entry{Event: Event{StartAt: "2026-01-15T16:30:00.000Z"}}
	if got, want := FormatDate(entry), "Thu, Jan 15, 2026"; got != want {
		t.Fatalf("FormatDate() = %q, want %q", got, want)
	}
	if got, want := FormatTime(entry), "6:30 PM"; got != want {
		t.Fatalf("FormatTime() = %q, want %q", got, want)
	}

	entry.Event.Timezone = "America/New_York"
	if got, want := FormatTime(entry), "11:30 AM"; got != want {
		t.Fatalf("FormatTime(New York) = %q, want %q", got, want)
	}

	broken := Entry{Event: Event{StartAt: "whenever"}}
	if got := FormatDate(broken); got != "Date TBA" {
		t.Fatalf("FormatDate(broken) = %q", got)
	}
	if got := FormatTime(broken); got != "Time TBA" {
		t.Fatalf("FormatTime(broken) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got, cut := Truncate("short", DescriptionLimit); got != "short" || cut {
		t.Fatalf("Truncate(short) = %q, %t", got, cut)
	}

	long := strings.Repeat("word ", 60)
	got, cut := Truncate(long, DescriptionLimit)
	if !cut || !strings.HasSuffix(got, "...") {
		t.Fatalf("Truncate(long) = %q, %t", got, cut)
	}
	if want := strings.TrimSuffix(long[:200], " ") + "..."; got != want {
		t.Fatalf("Truncate(long) = %q, want %q", got, want)
	}

	solid := strings.Repeat("x", 250)
	if got, _ := Truncate(solid, DescriptionLimit); got != strings.Repeat("x", 200)+"..." {
		t.Fatalf("Truncate(solid) length = %d", len(got))
	}
}
