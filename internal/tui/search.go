package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basket-cli/basket/internal/api"
	"github.com/basket-cli/basket/internal/debounce"
	"github.com/basket-cli/basket/internal/model"
	"github.com/basket-cli/basket/internal/ui"
)

type searchScope int

const (
	scopeUsers searchScope = iota
	scopeGroups
)

func (s searchScope) String() string {
	if s == scopeGroups {
		return "groups"
	}
	return "users"
}

type (
	stableQueryMsg string
	userHitsMsg    []model.User
	groupHitsMsg   []model.Group
	searchErrMsg   struct{ err error }
)

type searchModel struct {
	client *api.Client
	token  string

	ti    textinput.Model
	deb   *debounce.Debouncer[string]
	scope searchScope

	lines     []string
	searching bool
	status    string

	width, height int
}

// RunSearch starts the interactive search screen. Keystrokes feed the
// debouncer; only stabilized queries reach the backend. Clearing the input
// empties results immediately without waiting out the quiet period.
func RunSearch(client *api.Client, token string, quiet time.Duration) error {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search..."
	ti.CharLimit = 100
	ti.Focus()

	m := searchModel{
		client: client,
		token:  token,
		ti:     ti,
		deb:    debounce.New[string](quiet),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.deb.Stop()
	return err
}

// waitStable blocks on the debouncer until the next stabilized query.
func (m searchModel) waitStable() tea.Cmd {
	return func() tea.Msg {
		return stableQueryMsg(<-m.deb.C())
	}
}

func (m searchModel) search(query string) tea.Cmd {
	scope := m.scope
	return func() tea.Msg {
		ctx := context.Background()
		if scope == scopeGroups {
			hits, err := m.client.SearchGroups(ctx, m.token, query)
			if err != nil {
				return searchErrMsg{err}
			}
			return groupHitsMsg(hits)
		}
		hits, err := m.client.SearchUsers(ctx, m.token, query)
		if err != nil {
			return searchErrMsg{err}
		}
		return userHitsMsg(hits)
	}
}

func (m searchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitStable())
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stableQueryMsg:
		q := string(msg)
		// Stale by now: the input moved on or was cleared.
		if q != strings.TrimSpace(m.ti.Value()) || q == "" {
			return m, m.waitStable()
		}
		m.searching = true
		return m, tea.Batch(m.search(q), m.waitStable())

	case userHitsMsg:
		m.searching = false
		m.status = ""
		m.lines = m.lines[:0]
		for _, u := range msg {
			m.lines = append(m.lines, fmt.Sprintf("%s %s", u.Name, ui.MutedStyle.Render("@"+u.Username)))
		}
		return m, nil

	case groupHitsMsg:
		m.searching = false
		m.status = ""
		m.lines = m.lines[:0]
		for _, g := range msg {
			m.lines = append(m.lines, fmt.Sprintf("%s %s  %s",
				g.Name,
				ui.MutedStyle.Render(g.ID),
				ui.MutedStyle.Render(fmt.Sprintf("%d members", len(g.Members)))))
		}
		return m, nil

	case searchErrMsg:
		m.searching = false
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.scope == scopeUsers {
				m.scope = scopeGroups
			} else {
				m.scope = scopeUsers
			}
			m.lines = nil
			if q := strings.TrimSpace(m.ti.Value()); q != "" {
				m.deb.Send(q)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := strings.TrimSpace(m.ti.Value())
	m.ti, cmd = m.ti.Update(msg)
	after := strings.TrimSpace(m.ti.Value())
	if after != before {
		if after == "" {
			m.lines = nil
			m.status = ""
		} else {
			m.deb.Send(after)
		}
	}
	return m, cmd
}

func (m searchModel) View() string {
	header := ui.TitleStyle.Render("Search "+m.scope.String()) +
		ui.HelpStyle.Render("  tab: scope • esc: quit")

	body := strings.Join(m.lines, "\n")
	if m.searching {
		body = ui.MutedStyle.Render("searching…")
	} else if m.status != "" {
		body = ui.ErrorStyle.Render(m.status)
	} else if body == "" && strings.TrimSpace(m.ti.Value()) != "" {
		body = ui.MutedStyle.Render("no results")
	}

	return panelString(header + "\n" + m.ti.View() + "\n\n" + body)
}
