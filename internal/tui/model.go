package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/lead-intake/internal/infra/integration/leadsapi"
)

// Tab is one of the two lead lists on the board.
type Tab int

const (
	TabInvited Tab = iota
	TabAccepted
)

func (t Tab) String() string {
	switch t {
	case TabInvited:
		return "Invited"
	case TabAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}

// LeadClient is the subset of the API client the board needs.
type LeadClient interface {
	ListInvited(ctx context.Context) ([]leadsapi.Lead, error)
	ListAccepted(ctx context.Context) ([]leadsapi.Lead, error)
	Accept(ctx context.Context, id int64) error
	Decline(ctx context.Context, id int64) error
}

const requestTimeout = 15 * time.Second

// Model is the lead board: Invited and Accepted lists side by side as tabs.
type Model struct {
	client LeadClient
	tab    Tab
	width  int
	height int

	invited  []leadsapi.Lead
	accepted []leadsapi.Lead
	cursor   [2]int
	loading  [2]bool

	pending   bool // an accept/decline is in flight
	err       error
	statusMsg string
}

func New(client LeadClient) Model {
	return Model{
		client:  client,
		tab:     TabInvited,
		loading: [2]bool{true, true},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(TabInvited), m.load(TabAccepted))
}

func (m Model) load(tab Tab) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			leads []leadsapi.Lead
			err   error
		)
		if tab == TabInvited {
			leads, err = client.ListInvited(ctx)
		} else {
			leads, err = client.ListAccepted(ctx)
		}
		return leadsLoadedMsg{tab: tab, leads: leads, err: err}
	}
}

func (m Model) act(a action, id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if a == actionAccept {
			err = client.Accept(ctx, id)
		} else {
			err = client.Decline(ctx, id)
		}
		return leadActionMsg{action: a, id: id, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case leadsLoadedMsg:
		m.loading[msg.tab] = false
		if msg.err != nil {
			m.err = fmt.Errorf("load %s leads: %w", strings.ToLower(msg.tab.String()), msg.err)
			return m, nil
		}
		m.setLeads(msg.tab, msg.leads)
		return m, nil

	case leadActionMsg:
		m.pending = false
		if msg.err != nil {
			m.err = fmt.Errorf("%s lead %d: %w", msg.action, msg.id, msg.err)
			return m, nil
		}

		m.setLeads(TabInvited, without(m.invited, msg.id))
		if msg.action == actionAccept {
			m.statusMsg = fmt.Sprintf("Lead %d accepted", msg.id)
			m.loading[TabAccepted] = true
			return m, m.load(TabAccepted)
		}
		m.statusMsg = fmt.Sprintf("Lead %d declined", msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, DefaultKeyMap.Quit) {
		return m, tea.Quit
	}

	m.err = nil
	m.statusMsg = ""

	switch {
	case key.Matches(msg, DefaultKeyMap.Invited):
		m.tab = TabInvited
	case key.Matches(msg, DefaultKeyMap.Accepted):
		m.tab = TabAccepted
	case key.Matches(msg, DefaultKeyMap.NextTab):
		m.tab = (m.tab + 1) % 2
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor[m.tab] < len(m.leads(m.tab))-1 {
			m.cursor[m.tab]++
		}
	case key.Matches(msg, DefaultKeyMap.Refresh):
		m.loading = [2]bool{true, true}
		return m, tea.Batch(m.load(TabInvited), m.load(TabAccepted))
	case key.Matches(msg, DefaultKeyMap.Accept), key.Matches(msg, DefaultKeyMap.Decline):
		lead, ok := m.selected()
		if !ok || m.tab != TabInvited || m.pending {
			return m, nil
		}
		a := actionDecline
		if key.Matches(msg, DefaultKeyMap.Accept) {
			a = actionAccept
		}
		m.pending = true
		return m, m.act(a, lead.ID)
	}

	return m, nil
}

func (m Model) leads(tab Tab) []leadsapi.Lead {
	if tab == TabInvited {
		return m.invited
	}
	return m.accepted
}

func (m *Model) setLeads(tab Tab, leads []leadsapi.Lead) {
	if tab == TabInvited {
		m.invited = leads
	} else {
		m.accepted = leads
	}
	if m.cursor[tab] >= len(leads) {
		m.cursor[tab] = max(0, len(leads)-1)
	}
}

func (m Model) selected() (leadsapi.Lead, bool) {
	leads := m.leads(m.tab)
	if len(leads) == 0 {
		return leadsapi.Lead{}, false
	}
	return leads[m.cursor[m.tab]], true
}

func without(leads []leadsapi.Lead, id int64) []leadsapi.Lead {
	out := make([]leadsapi.Lead, 0, len(leads))
	for _, l := range leads {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lead Board"))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabInvited, TabAccepted} {
		label := fmt.Sprintf("%s (%d)", t, len(m.leads(t)))
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	b.WriteString(m.renderList())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return appBorderStyle.Render(b.String())
}

func (m Model) renderList() string {
	if m.loading[m.tab] {
		return subtitleStyle.Render("Loading...")
	}

	leads := m.leads(m.tab)
	if len(leads) == 0 {
		return subtitleStyle.Render(fmt.Sprintf("No %s leads", strings.ToLower(m.tab.String())))
	}

	var b strings.Builder
	header := fmt.Sprintf("%-5s %-22s %-14s %-14s %12s", "ID", "Name", "Suburb", "Category", "Price")
	b.WriteString(subtitleStyle.Render(header))
	b.WriteString("\n")

	for i, l := range leads {
		line := fmt.Sprintf("%-5d %-22s %-14s %-14s %12s",
			l.ID,
			truncateStr(l.FullName(), 22),
			truncateStr(l.Suburb, 14),
			truncateStr(l.Category, 14),
			formatMoney(l.Price),
		)
		if i == m.cursor[m.tab] {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if lead, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(truncateStr(lead.Description, 72)))
		b.WriteString("  ")
		b.WriteString(priceStyle.Render(formatMoney(lead.Price)))
		if contact := contactLine(lead); contact != "" {
			b.WriteString("\n")
			b.WriteString(subtitleStyle.Render(contact))
		}
	}

	return b.String()
}

func contactLine(l leadsapi.Lead) string {
	parts := make([]string, 0, 2)
	if phone := formatPhone(l.PhoneNumber); phone != "" {
		parts = append(parts, phone)
	}
	if l.Email != "" {
		parts = append(parts, l.Email)
	}
	return strings.Join(parts, " · ")
}

func (m Model) helpLine() string {
	bindings := []key.Binding{DefaultKeyMap.NextTab, DefaultKeyMap.Up, DefaultKeyMap.Down}
	if m.tab == TabInvited {
		bindings = append(bindings, DefaultKeyMap.Accept, DefaultKeyMap.Decline)
	}
	bindings = append(bindings, DefaultKeyMap.Refresh, DefaultKeyMap.Quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
