package leadsapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lead mirrors the JSON the lead intake API returns. Null text fields decode
// to "".
type Lead struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Email       string          `json:"email"`
	Suburb      string          `json:"suburb"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	JobTitle    string          `json:"jobTitle"`
	DateCreated time.Time       `json:"dateCreated"`
	DateUpdated time.Time       `json:"dateUpdated"`
	JobID       *int64          `json:"jobId"`
}

func (l Lead) FullName() string {
	switch {
	case l.FirstName == "":
		return l.LastName
	case l.LastName == "":
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
