package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"venicelocal/internal/model"
)

// Terminal browser for the directory API. Read-only: it lists, filters,
// and sorts listings and shows their reviews.

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("36")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
)

var categories = []string{"all", "Food", "Retail", "Wellness", "Services"}

var sortKeys = []string{"none", "rating", "reviews", "alpha"}

type view int

const (
	viewList view = iota
	viewDetail
	viewSearch
)

type browseModel struct {
	apiURL     string
	view       view
	businesses []model.Business
	cursor     int
	search     string
	input      string
	category   int
	sort       int
	message    string
	quitting   bool
}

type businessesMsg []model.Business
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(apiURL string) browseModel {
	return browseModel{apiURL: apiURL}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetch()
}

func (m browseModel) fetch() tea.Cmd {
	apiURL := m.apiURL
	params := url.Values{}
	params.Set("search", m.search)
	params.Set("category", categories[m.category])
	params.Set("sort", sortKeys[m.sort])
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(apiURL + "/api/businesses?" + params.Encode())
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach %s: %w", apiURL, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned status %d", resp.StatusCode)}
		}

		var businesses []model.Business
		if err := json.NewDecoder(resp.Body).Decode(&businesses); err != nil {
			return errMsg{fmt.Errorf("decode response: %w", err)}
		}
		return businessesMsg(businesses)
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case businessesMsg:
		m.businesses = msg
		m.message = ""
		if m.cursor >= len(m.businesses) {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.message = msg.Error()
		return m, nil

	case tea.KeyMsg:
		if m.view == viewSearch {
			switch msg.Type {
			case tea.KeyEnter:
				m.search = m.input
				m.view = viewList
				return m, m.fetch()
			case tea.KeyEsc:
				m.view = viewList
				return m, nil
			case tea.KeyBackspace:
				if len(m.input) > 0 {
					m.input = m.input[:len(m.input)-1]
				}
				return m, nil
			case tea.KeyRunes, tea.KeySpace:
				m.input += string(msg.Runes)
				return m, nil
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.businesses)-1 {
				m.cursor++
			}
		case "enter":
			if m.view == viewList && len(m.businesses) > 0 {
				m.view = viewDetail
			}
		case "esc":
			m.view = viewList
		case "/":
			m.view = viewSearch
			m.input = m.search
		case "c":
			m.category = (m.category + 1) % len(categories)
			m.cursor = 0
			return m, m.fetch()
		case "s":
			m.sort = (m.sort + 1) % len(sortKeys)
			return m, m.fetch()
		case "r":
			return m, m.fetch()
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	out := titleStyle.Render("Venice Local") + "\n"
	out += mutedStyle.Render(fmt.Sprintf("category: %s  sort: %s  search: %q",
		categories[m.category], sortKeys[m.sort], m.search)) + "\n\n"

	if m.message != "" {
		out += errorStyle.Render(m.message) + "\n\n"
	}

	switch m.view {
	case viewSearch:
		out += "Search: " + m.input + "█\n"
		out += mutedStyle.Render("enter to apply, esc to cancel") + "\n"

	case viewDetail:
		if m.cursor < len(m.businesses) {
			b := m.businesses[m.cursor]
			out += selectedStyle.Render(b.Name) + "  " + ratingStyle.Render(fmt.Sprintf("★ %.1f", b.AverageRating)) + "\n"
			out += normalStyle.Render(b.Category+" • "+b.Address) + "\n"
			out += normalStyle.Render(b.ShortDescription) + "\n"
			out += normalStyle.Render("Hours: "+b.Hours) + "\n"
			if b.SpecialDeals != "" {
				out += normalStyle.Render("Deals: "+b.SpecialDeals) + "\n"
			}
			out += "\n" + normalStyle.Render(fmt.Sprintf("Reviews (%d):", len(b.Reviews))) + "\n"
			for _, r := range b.Reviews {
				out += normalStyle.Render(fmt.Sprintf("%s — ★ %d — %s", r.UserName, r.Rating, r.Comment)) + "\n"
			}
		}
		out += "\n" + mutedStyle.Render("esc back, q quit") + "\n"

	default:
		if len(m.businesses) == 0 {
			out += normalStyle.Render("no businesses match") + "\n"
		}
		for i, b := range m.businesses {
			line := fmt.Sprintf("%-24s %-10s ★ %.1f (%d reviews)", b.Name, b.Category, b.AverageRating, len(b.Reviews))
			if i == m.cursor {
				out += selectedStyle.Render("> "+line) + "\n"
			} else {
				out += normalStyle.Render(line) + "\n"
			}
		}
		out += "\n" + mutedStyle.Render("↑/↓ move, enter detail, / search, c category, s sort, r refresh, q quit") + "\n"
	}

	return out
}

func main() {
	apiURL := os.Getenv("VL_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	p := tea.NewProgram(initialModel(apiURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
