package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LeadStatus is the lifecycle state of a lead. Only the three values below exist.
type LeadStatus string

const (
	StatusInvited  LeadStatus = "Invited"
	StatusAccepted LeadStatus = "Accepted"
	StatusDeclined LeadStatus = "Declined"
)

var (
	ErrInvalidTransition = errors.New("only invited leads can be accepted or declined")
	ErrInvalidStatus     = errors.New("unknown lead status")
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadConflict      = errors.New("lead was modified concurrently")
)

// Leads priced above the threshold get the discount factor applied on acceptance.
var (
	DiscountThreshold = decimal.NewFromInt(500)
	DiscountFactor    = decimal.RequireFromString("0.9")
)

// ParseLeadStatus is an exact, case-sensitive match.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch st := LeadStatus(s); st {
	case StatusInvited, StatusAccepted, StatusDeclined:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []LeadStatus {
	return []LeadStatus{StatusInvited, StatusAccepted, StatusDeclined}
}

func (s LeadStatus) String() string {
	return string(s)
}

type Lead struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Suburb      string
	Category    string
	Description string
	Price       decimal.Decimal
	Status      LeadStatus
	JobTitle    string
	DateCreated time.Time
	DateUpdated time.Time
	JobID       *int64

	// Version is bumped by the store on every save and checked on the next one.
	Version int
}

// timeNow is swapped in tests.
var timeNow = func() time.Time {
	return time.Now().UTC()
}

// NewLead builds an invited lead. Fields are taken as given, price included.
func NewLead(firstName, lastName, suburb, category, description string, price decimal.Decimal, email, phoneNumber string, jobID *int64) *Lead {
	now := timeNow()
	return &Lead{
		FirstName:   firstName,
		LastName:    lastName,
		Suburb:      suburb,
		Category:    category,
		Description: description,
		Price:       price,
		Email:       email,
		PhoneNumber: phoneNumber,
		JobID:       jobID,
		Status:      StatusInvited,
		DateCreated: now,
		DateUpdated: now,
	}
}

// Accept moves an invited lead to accepted, discounting the price once when it
// exceeds DiscountThreshold.
func (l *Lead) Accept() error {
	if l.Status != StatusInvited {
		return fmt.Errorf("accept lead %d (status %s): %w", l.ID, l.Status, ErrInvalidTransition)
	}

	if l.Price.GreaterThan(DiscountThreshold) {
		l.Price = l.Price.Mul(DiscountFactor)
	}

	l.Status = StatusAccepted
	l.Touch()
	return nil
}

// Decline moves an invited lead to declined. The price is left alone.
func (l *Lead) Decline() error {
	if l.Status != StatusInvited {
		return fmt.Errorf("decline lead %d (status %s): %w", l.ID, l.Status, ErrInvalidTransition)
	}

	l.Status = StatusDeclined
	l.Touch()
	return nil
}

// Touch stamps DateUpdated with the current time. It never moves the stamp
// backwards nor below DateCreated.
func (l *Lead) Touch() {
	now := timeNow()
	if now.Before(l.DateUpdated) {
		now = l.DateUpdated
	}
	if now.Before(l.DateCreated) {
		now = l.DateCreated
	}
	l.DateUpdated = now
}

// PersistenceError reports a failed read or write against the lead store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("lead store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type LeadRepositoryInterface interface {
	// FindByID returns nil, nil when no lead has the id.
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindByStatus(ctx context.Context, status LeadStatus) ([]*Lead, error)
	// Save stamps DateUpdated and overwrites the stored lead. A stale Version
	// fails with ErrLeadConflict.
	Save(ctx context.Context, lead *Lead) error
	Create(ctx context.Context, lead *Lead) error
}
