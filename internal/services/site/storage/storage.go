// Package storage declares persistence contracts for site-owned data.
//
// Membership applications are the only records the site keeps; everything
// else it shows is derived from content files or the event calendar.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("storage: record not found")

// Application is one membership-interest submission.
type Application struct {
	ID         string
	FullName   string
	Email      string
	Phone      string
	Interest   string
	Experience string
	Newsletter bool
	CreatedAt  time.Time
}

// ApplicationStore persists membership applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, application Application) error
	GetApplication(ctx context.Context, id string) (Application, error)
	ListApplications(ctx context.Context, limit int) ([]Application, error)
}
