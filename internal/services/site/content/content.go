// Package content loads the hardware catalog and the project log.
//
// Both are YAML documents embedded in the binary. A directory on disk can
// replace them at runtime; see Watch.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	hardwareFile = "hardware.yaml"
	logFile      = "log.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// HardwareStatus is an item's availability.
type HardwareStatus string

const (
	StatusAvailable   HardwareStatus = "available"
	StatusComingSoon  HardwareStatus = "coming-soon"
	StatusMaintenance HardwareStatus = "maintenance"
)

func (s HardwareStatus) valid() bool {
	switch s {
	case StatusAvailable, StatusComingSoon, StatusMaintenance:
		return true
	}
	return false
}

// HardwareItem is one shared machine.
type HardwareItem struct {
	ID                 string         `yaml:"id" json:"id"`
	Name               string         `yaml:"name" json:"name"`
	Description        string         `yaml:"description" json:"description"`
	CloudinaryPublicID string         `yaml:"cloudinaryPublicId" json:"cloudinaryPublicId"`
	Categories         []string       `yaml:"categories" json:"categories"`
	Status             HardwareStatus `yaml:"status" json:"status"`
	Details            []string       `yaml:"details" json:"details"`
	Related            []string       `yaml:"related" json:"related"`
}

// LogType classifies a log entry.
type LogType string

const (
	LogAnnouncement LogType = "announcement"
	LogMilestone    LogType = "milestone"
	LogEvent        LogType = "event"
	LogUpdate       LogType = "update"
)

func (t LogType) valid() bool {
	switch t {
	case LogAnnouncement, LogMilestone, LogEvent, LogUpdate:
		return true
	}
	return false
}

// LogEntry is one post in the project log.
type LogEntry struct {
	ID        string    `yaml:"id" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Content   string    `yaml:"content" json:"content"`
	Author    string    `yaml:"author" json:"author"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Tags      []string  `yaml:"tags" json:"tags"`
	Type      LogType   `yaml:"type" json:"type"`
}

// Snapshot is an immutable view of all content.
type Snapshot struct {
	Hardware []HardwareItem
	Log      []LogEntry
}

// Embedded returns the content compiled into the binary.
func Embedded() (Snapshot, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return Snapshot{}, fmt.Errorf("open embedded content: %w", err)
	}
	return Load(sub)
}

// Load reads hardware.yaml and log.yaml from fsys. Log entries are sorted
// newest first.
func Load(fsys fs.FS) (Snapshot, error) {
	var hardware struct {
		Items []HardwareItem `yaml:"items"`
	}
	if err := decodeFile(fsys, hardwareFile, &hardware); err != nil {
		return Snapshot{}, err
	}
	var log struct {
		Entries []LogEntry `yaml:"entries"`
	}
	if err := decodeFile(fsys, logFile, &log); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{Hardware: hardware.Items, Log: log.Entries}
	if err := snapshot.validate(); err != nil {
		return Snapshot{}, err
	}
	sort.SliceStable(snapshot.Log, func(i, j int) bool {
		return snapshot.Log[i].Timestamp.After(snapshot.Log[j].Timestamp)
	})
	return snapshot, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s Snapshot) validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Hardware))
	for i, item := range s.Hardware {
		id := strings.TrimSpace(item.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("hardware[%d]: id is required", i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("hardware %q: duplicate id", id))
		}
		seen[id] = true
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Errorf("hardware %q: name is required", id))
		}
		if !item.Status.valid() {
			errs = append(errs, fmt.Errorf("hardware %q: unknown status %q", id, item.Status))
		}
	}
	for _, item := range s.Hardware {
		for _, related := range item.Related {
			if !seen[related] {
				errs = append(errs, fmt.Errorf("hardware %q: unknown related item %q", item.ID, related))
			}
		}
	}

	seenLog := make(map[string]bool, len(s.Log))
	for i, entry := range s.Log {
		id := strings.TrimSpace(entry.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("log[%d]: id is required", i))
		case seenLog[id]:
			errs = append(errs, fmt.Errorf("log %q: duplicate id", id))
		}
		seenLog[id] = true
		if !entry.Type.valid() {
			errs = append(errs, fmt.Errorf("log %q: unknown type %q", id, entry.Type))
		}
		if entry.Timestamp.IsZero() {
			errs = append(errs, fmt.Errorf("log %q: timestamp is required", id))
		}
	}
	return errors.Join(errs...)
}

// HardwareByID returns the item with id.
func (s Snapshot) HardwareByID(id string) (HardwareItem, bool) {
	for _, item := range s.Hardware {
		if item.ID == id {
			return item, true
		}
	}
	return HardwareItem{}, false
}
