package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	titleText      = "Laundry Drying Manager"
	quickAddHeader = "Quick Add"
	itemsHeader    = "Drying Items"
	emptyText      = "No items drying. Add some clothes above!"
	allTakenLabel  = "All Taken"
	takenLabel     = "Taken"
	addLabel       = "Add"
)

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(titleText))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Panel.Render(m.viewQuickAdd()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Panel.Render(m.viewItems()))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Error.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render(m.helpLine()))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) viewQuickAdd() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Section.Render(quickAddHeader))
	sb.WriteString("\n\n")

	names := m.suggestions()
	var row []string
	for i, name := range names {
		style := m.styles.Button
		if m.focus == sectionQuickAdd && i == m.quickCursor {
			style = style.Inherit(m.styles.Selected)
		}
		row = append(row, style.Render(name))
		if len(row) == quickAddColumns || i == len(names)-1 {
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			sb.WriteString("\n")
			row = row[:0]
		}
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}

	add := m.styles.AddButton
	if m.focus == sectionInput {
		add = add.Inherit(m.styles.Selected)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", add.Render(addLabel)))
	return sb.String()
}

func (m Model) viewItems() string {
	items := m.store.Snapshot()
	if len(items) == 0 {
		return m.styles.Muted.Render(emptyText)
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Section.Render(itemsHeader), "   ", m.styles.DangerButton.Render(allTakenLabel)))
	sb.WriteString("\n\n")

	for i, it := range items {
		selected := m.focus == sectionItems && i == m.itemCursor
		marker := "  "
		if selected {
			marker = "▸ "
		}
		name := m.styles.ItemName
		if selected {
			name = name.Inherit(m.styles.Selected)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			marker,
			name.Render(it.Name),
			m.styles.Quantity.Render(fmt.Sprintf("Quantity: %d", it.Quantity)),
			m.styles.StepButton.Render("-"),
			fmt.Sprintf("%3d ", it.Quantity),
			m.styles.StepButton.Render("+"),
			m.styles.DangerButton.Render(takenLabel),
		)
		sb.WriteString(row)
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) helpLine() string {
	switch m.focus {
	case sectionInput:
		return "enter add • tab next • ctrl+c quit"
	case sectionItems:
		return "↑/↓ select • +/- quantity • x taken • A all taken • tab next • q quit"
	default:
		return "←/→/↑/↓ select • enter add • A all taken • tab next • q quit"
	}
}
