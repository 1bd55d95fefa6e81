package tui

import (
	"fmt"
	"strings"

	"konvyshop/autocomplete"
	"konvyshop/models"
	"konvyshop/search"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current pane.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.pane {
	case paneResults:
		b.WriteString(m.resultsView())
	case paneCategory:
		b.WriteString(m.categoryView())
	case panePreview:
		b.WriteString(m.previewView())
	case paneAccounts:
		b.WriteString(m.accountsView())
	default:
		b.WriteString(m.formView())
		b.WriteString("\n")
		b.WriteString(m.resultsSummary())
	}

	if m.buying != 0 {
		b.WriteString("\n")
		b.WriteString(styles.overlay.Render(m.spinner.View() + " Processing Purchase... Please do not quit"))
	}
	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(styles.errorText.Render(m.status))
		} else {
			b.WriteString(styles.okText.Render(m.status))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.helpBindings()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) header() string {
	user := "guest"
	if m.state.LoggedIn() {
		user = m.state.Username()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.title.Render("Konvy"),
		styles.subtle.Render(fmt.Sprintf("  %s · %d catalog items", user, m.opts.Catalog.Len())),
	)
}

func (m *Model) formView() string {
	var b strings.Builder
	for _, c := range m.rows.Rows() {
		b.WriteString(m.inputs[c.ID()].View())
		b.WriteString("\n")
		if dd := dropdownView(c.Snapshot()); dd != "" {
			b.WriteString(dd)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	labels := [filterCount]string{"Days", "Skins", "Budget"}
	for i := range m.filters {
		b.WriteString(styles.label.Render(labels[i]))
		b.WriteString(m.filters[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

func dropdownView(v autocomplete.View) string {
	if !v.Visible {
		return ""
	}
	if v.NoResults {
		return styles.dropdown.Render(styles.subtle.Render(autocomplete.NoResultsText))
	}

	lines := make([]string, 0, len(v.Candidates))
	for i, item := range v.Candidates {
		line := fmt.Sprintf("%s  %s", item.Name, styles.subtle.Render(item.TypeLabel()))
		if i == v.Selected {
			lines = append(lines, styles.selected.Render(line))
		} else {
			lines = append(lines, styles.candidate.Render(line))
		}
	}
	return styles.dropdown.Render(strings.Join(lines, "\n"))
}

func (m *Model) resultsSummary() string {
	if m.searching {
		return m.spinner.View() + " " + search.LoadingText
	}
	switch m.outcome.Status {
	case search.Results:
		return styles.okText.Render(fmt.Sprintf("%d accounts found (ctrl+r to browse)", len(m.outcome.Accounts)))
	case search.Empty:
		return "😕 " + search.EmptyText + "\n" + styles.subtle.Render(search.EmptyHint)
	case search.Failed:
		return styles.errorText.Render("❌ " + search.FailedHeadline + ": " + m.outcome.Message)
	}
	return ""
}

func (m *Model) resultsView() string {
	if m.searching || m.outcome.Status != search.Results {
		return m.resultsSummary() + m.notFoundView()
	}

	cards := make([]string, 0, len(m.outcome.Accounts))
	for i, acc := range m.outcome.Accounts {
		style := styles.card
		if i == m.cursor {
			style = styles.cardFocus
		}
		cards = append(cards, style.Render(m.cardView(acc)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...) + m.notFoundView()
}

func (m *Model) cardView(acc models.AccountResult) string {
	heart := "♡"
	if m.state.Favorites.Has(acc.ItemID) {
		heart = styles.favorite.Render("♥")
	}
	top := fmt.Sprintf("%s  Full Access  %s  #%d", heart, styles.price.Render(acc.PriceLabel()), acc.ItemID)
	stats := fmt.Sprintf("Level %d · Skins %d · Pickaxes %d · Emotes %d · Gliders %d · V-Bucks %d · Last played %s",
		acc.Level, acc.Skins, acc.Pickaxes, acc.Emotes, acc.Gliders, acc.VBucks, acc.LastPlayedLabel())
	return top + "\n" + styles.subtle.Render(stats)
}

func (m *Model) notFoundView() string {
	if len(m.outcome.NotFound) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nNot found:")
	for _, nf := range m.outcome.NotFound {
		b.WriteString("\n  " + nf.Name)
		if nf.Suggestion != "" {
			b.WriteString(styles.subtle.Render("  did you mean " + nf.Suggestion + "?"))
		}
	}
	return b.String()
}

func (m *Model) categoryView() string {
	lines := []string{styles.title.Render("Preview which cosmetics?"), ""}
	for i, c := range models.CosmeticCategories {
		lines = append(lines, fmt.Sprintf("%d  %s", i+1, c.Label()))
	}
	return styles.dialog.Render(strings.Join(lines, "\n"))
}

func (m *Model) previewView() string {
	if m.job == nil {
		return ""
	}
	title := styles.title.Render(m.category.ModalTitle())

	res, done := m.job.Result()
	if !done {
		p := m.job.Progress()
		return styles.dialog.Render(fmt.Sprintf("%s\n\nLoading %d / %d", title, p.Loaded, p.Total))
	}
	if res.Message != "" {
		return styles.dialog.Render(title + "\n\n" + res.Message)
	}

	lines := make([]string, 0, len(res.Tiles))
	for _, t := range res.Tiles {
		if t.Broken || t.Icon == "" {
			lines = append(lines, t.Name+styles.subtle.Render("  (no image)"))
			continue
		}
		lines = append(lines, t.Name+styles.subtle.Render("  "+t.Icon))
	}
	return styles.dialog.Render(title + "\n\n" + strings.Join(lines, "\n"))
}

func (m *Model) accountsView() string {
	ma := m.state.MyAccounts
	switch {
	case !m.state.LoggedIn():
		return styles.subtle.Render(LoginHint)
	case ma.Failed():
		return styles.errorText.Render(search.MyAccountsFailedText)
	case ma.Len() == 0:
		return styles.subtle.Render(search.MyAccountsEmptyText)
	}

	acc, _ := ma.Current()
	cred := acc.Credentials()
	body := strings.Join([]string{
		styles.title.Render(ma.Indicator()),
		"",
		styles.label.Render("Email") + cred.EmailLogin,
		styles.label.Render("Site") + cred.EmailSite,
		styles.label.Render("Epic") + cred.EpicLogin,
	}, "\n")
	return styles.dialog.Render(body)
}
