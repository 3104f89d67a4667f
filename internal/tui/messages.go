package tui

import "github.com/xavierca1/lead-intake/internal/infra/integration/leadsapi"

// leadsLoadedMsg carries one tab's list from the API
type leadsLoadedMsg struct {
	tab   Tab
	leads []leadsapi.Lead
	err   error
}

type action int

const (
	actionAccept action = iota
	actionDecline
)

func (a action) String() string {
	if a == actionAccept {
		return "accept"
	}
	return "decline"
}

// leadActionMsg reports the outcome of an accept or decline call
type leadActionMsg struct {
	action action
	id     int64
	err    error
}
