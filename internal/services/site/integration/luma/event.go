package luma

import (
	"encoding/json"
	"strings"
	"time"
)

// Entry is one calendar listing. The upstream payload is kept verbatim so the
// events API can pass through fields the site does not model.
type Entry struct {
	APIID string `json:"api_id"`
	Event Event  `json:"event"`

	raw json.RawMessage
}

// Event holds the event fields the site renders.
type Event struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	StartAt     string      `json:"start_at"`
	EndAt       string      `json:"end_at,omitempty"`
	Timezone    string      `json:"timezone,omitempty"`
	CoverURL    string      `json:"cover_url,omitempty"`
	URL         string      `json:"url,omitempty"`
	GeoAddress  *GeoAddress `json:"geo_address_json,omitempty"`
}

// GeoAddress is the venue address.
type GeoAddress struct {
	Address     string `json:"address,omitempty"`
	FullAddress string `json:"full_address,omitempty"`
}

type listResponse struct {
	Entries    []Entry `json:"entries"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// UnmarshalJSON decodes the modeled fields and retains the raw payload.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*e = Entry(decoded)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the original payload when one was decoded.
func (e Entry) MarshalJSON() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	type plain Entry
	return json.Marshal(plain(e))
}

// Start parses the event start time.
func (e Entry) Start() (time.Time, bool) {
	value := strings.TrimSpace(e.Event.StartAt)
	if value == "" {
		return time.Time{}, false
	}
	start, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

// Address returns the short venue address, if any.
func (e Entry) Address() string {
	if e.Event.GeoAddress == nil {
		return ""
	}
	return strings.TrimSpace(e.Event.GeoAddress.Address)
}
