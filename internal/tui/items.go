// Package tui holds the interactive Bubble Tea views: the per-group item
// list and the debounced search screen.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/basket-cli/basket/internal/api"
	"github.com/basket-cli/basket/internal/model"
	"github.com/basket-cli/basket/internal/ui"
)

// itemEntry adapts a model.Item to bubbles/list.Item
type itemEntry struct {
	Item model.Item
}

func (e itemEntry) Title() string       { return e.Item.Title }
func (e itemEntry) Description() string { return "" }
func (e itemEntry) FilterValue() string { return e.Item.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, _ := item.(itemEntry)
	line := fmt.Sprintf("%s %s", ui.AccentStyle.Render("•"), e.Item.Title)
	if by := e.Item.CreatedBy.Name; by != "" {
		line += ui.MutedStyle.Render("  — " + by)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// messages produced by API commands
type (
	itemsLoadedMsg []model.Item
	itemAddedMsg   struct{}
	itemRemovedMsg struct{}
	itemsErrMsg    struct{ err error }
)

type itemsModel struct {
	client *api.Client
	token  string
	group  model.Group

	list    list.Model
	ti      textinput.Model
	adding  bool
	pending bool
	status  string

	width, height int
}

// RunItems starts the interactive item list for a group. Mutations go
// straight to the backend; the list re-syncs from the server after each.
func RunItems(client *api.Client, token string, group model.Group) error {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = ui.TitleStyle.Render(group.Name)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	reloadBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, delBind, reloadBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, delBind, reloadBind} }

	m := itemsModel{client: client, token: token, group: group, list: l}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "New item title..."
	m.ti.CharLimit = 200

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m itemsModel) loadItems() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.GroupItems(context.Background(), m.token, m.group.ID)
		if err != nil {
			return itemsErrMsg{err}
		}
		return itemsLoadedMsg(items)
	}
}

func (m itemsModel) addItem(title string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.CreateItem(context.Background(), m.token, m.group.ID, title); err != nil {
			return itemsErrMsg{err}
		}
		return itemAddedMsg{}
	}
}

func (m itemsModel) removeItem(itemID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.DeleteItem(context.Background(), m.token, m.group.ID, itemID); err != nil {
			return itemsErrMsg{err}
		}
		return itemRemovedMsg{}
	}
}

func (m itemsModel) Init() tea.Cmd { return m.loadItems() }

func (m itemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case itemsLoadedMsg:
		entries := make([]list.Item, 0, len(msg))
		for _, it := range msg {
			entries = append(entries, itemEntry{Item: it})
		}
		m.pending = false
		m.status = ""
		return m, m.list.SetItems(entries)

	case itemAddedMsg, itemRemovedMsg:
		// Re-sync from the server rather than patching locally.
		return m, m.loadItems()

	case itemsErrMsg:
		m.pending = false
		m.status = msg.err.Error()
		return m, nil
	}

	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, isKey := msg.(tea.KeyMsg); isKey {
			switch x.String() {
			case "enter":
				title := strings.TrimSpace(m.ti.Value())
				if title == "" {
					m.status = "Title cannot be empty"
					return m, nil
				}
				m.ti.SetValue("")
				m.ti.Blur()
				m.adding = false
				m.pending = true
				return m, m.addItem(title)
			case "esc":
				m.adding = false
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if msg, isKey := msg.(tea.KeyMsg); isKey {
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.status = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, nil
		case "d":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if e, isEntry := m.list.Items()[i].(itemEntry); isEntry {
					m.pending = true
					return m, m.removeItem(e.Item.ID)
				}
			}
			return m, nil
		case "r":
			m.pending = true
			return m, m.loadItems()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m itemsModel) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	listHeight := h - 4
	if m.adding {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.adding {
		title := "Add new item"
		content += "\n" + inputBox(title+"\n"+m.ti.View())
	}
	if m.pending {
		content += "\n" + ui.MutedStyle.Render("…")
	} else if m.status != "" {
		content += "\n" + ui.ErrorStyle.Render(m.status)
	}
	return panelString(content)
}

func inputBox(inner string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return box.Render(inner)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
