package handlers

import (
	"encoding/json"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// LeadResponse is the wire shape of a lead. Empty optional text fields and a
// missing job id are sent as null.
type LeadResponse struct {
	ID          int64       `json:"id"`
	FirstName   *string     `json:"firstName"`
	LastName    *string     `json:"lastName"`
	PhoneNumber *string     `json:"phoneNumber"`
	Email       *string     `json:"email"`
	Suburb      *string     `json:"suburb"`
	Category    *string     `json:"category"`
	Description *string     `json:"description"`
	Price       json.Number `json:"price"`
	Status      string      `json:"status"`
	JobTitle    *string     `json:"jobTitle"`
	DateCreated time.Time   `json:"dateCreated"`
	DateUpdated time.Time   `json:"dateUpdated"`
	JobID       *int64      `json:"jobId"`
}

type ProblemResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	Status int    `json:"status"`
}

func NewLeadResponse(l *entity.Lead) LeadResponse {
	return LeadResponse{
		ID:          l.ID,
		FirstName:   optional(l.FirstName),
		LastName:    optional(l.LastName),
		PhoneNumber: optional(l.PhoneNumber),
		Email:       optional(l.Email),
		Suburb:      optional(l.Suburb),
		Category:    optional(l.Category),
		Description: optional(l.Description),
		Price:       json.Number(l.Price.String()),
		Status:      l.Status.String(),
		JobTitle:    optional(l.JobTitle),
		DateCreated: l.DateCreated,
		DateUpdated: l.DateUpdated,
		JobID:       l.JobID,
	}
}

func NewLeadListResponse(leads []*entity.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, NewLeadResponse(l))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
