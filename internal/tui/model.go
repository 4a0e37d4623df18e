// Package tui is the interactive terminal projection of the rack.
//
// The model renders a store snapshot and the quick-add suggestions on
// every frame and turns key presses into store commands. Its only state
// of its own is transient: focus, cursors, the custom-name input, and the
// status line.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/dryrack/internal/catalog"
	"github.com/mesh-intelligence/dryrack/internal/rack"
)

// section identifies the focused part of the screen.
type section int

const (
	sectionQuickAdd section = iota
	sectionInput
	sectionItems
	sectionCount
)

// quickAddColumns is the width of the quick-add grid.
const quickAddColumns = 4

// Model is the bubbletea model for the rack screen.
type Model struct {
	store   *rack.Store
	catalog []string
	logger  *zap.Logger
	styles  Styles

	input       textinput.Model
	focus       section
	quickCursor int
	itemCursor  int
	status      string
}

// New creates a model over store. A nil logger discards log output.
func New(store *rack.Store, names []string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Add custom clothes type..."
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{
		store:   store,
		catalog: names,
		logger:  logger,
		styles:  DefaultStyles(),
		input:   ti,
	}
	if len(m.suggestions()) == 0 {
		m = m.setFocus(sectionInput)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// suggestions returns the catalog names not on the rack.
func (m Model) suggestions() []string {
	return catalog.Available(m.catalog, m.store.Snapshot())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.cycleFocus(+1), nil
		case "shift+tab":
			return m.cycleFocus(-1), nil
		}

		if m.focus == sectionInput {
			return m.updateInput(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "A":
			m.clearAll()
			return m.clampCursors(), nil
		}

		if m.focus == sectionQuickAdd {
			return m.updateQuickAdd(msg), nil
		}
		return m.updateItems(msg), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submitCustom()
		return m.clampCursors(), nil
	case "esc":
		return m.cycleFocus(+1), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateQuickAdd(msg tea.KeyMsg) Model {
	names := m.suggestions()
	switch msg.String() {
	case "left", "h":
		m.quickCursor--
	case "right", "l":
		m.quickCursor++
	case "up", "k":
		m.quickCursor -= quickAddColumns
	case "down", "j":
		m.quickCursor += quickAddColumns
	case "enter", " ":
		if m.quickCursor >= 0 && m.quickCursor < len(names) {
			m.add(names[m.quickCursor])
		}
	}
	return m.clampCursors()
}

func (m Model) updateItems(msg tea.KeyMsg) Model {
	items := m.store.Snapshot()
	if len(items) == 0 {
		return m
	}
	m = m.clampCursors()
	selected := items[m.itemCursor]

	switch msg.String() {
	case "up", "k":
		m.itemCursor--
	case "down", "j":
		m.itemCursor++
	case "+", "=", "right", "l":
		m.changeQuantity(selected.ID, +1)
	case "-", "_", "left", "h":
		m.changeQuantity(selected.ID, -1)
	case "enter", "x", "delete", "backspace":
		m.remove(selected.ID)
	}
	return m.clampCursors()
}

// submitCustom adds the trimmed input text and clears the field. Blank
// input leaves the field as is.
func (m *Model) submitCustom() {
	if !m.add(m.input.Value()) {
		return
	}
	m.input.Reset()
}

// add dispatches AddItem. It reports whether the name was non-blank; a
// duplicate name counts as submitted and is otherwise ignored.
func (m *Model) add(name string) bool {
	item, added, err := m.store.AddItem(name)
	if err != nil {
		m.fail(err)
		return true
	}
	if added {
		m.logger.Debug("quick add", zap.String("name", item.Name))
	}
	return item.ID != ""
}

func (m *Model) changeQuantity(id string, delta int) {
	if _, _, err := m.store.ChangeQuantity(id, delta); err != nil {
		m.fail(err)
	}
}

func (m *Model) remove(id string) {
	if _, err := m.store.RemoveItem(id); err != nil {
		m.fail(err)
	}
}

func (m *Model) clearAll() {
	if m.store.Len() == 0 {
		return
	}
	if err := m.store.ClearAll(); err != nil {
		m.fail(err)
	}
}

func (m *Model) fail(err error) {
	m.logger.Warn("command failed", zap.Error(err))
	m.status = fmt.Sprintf("Could not save: %v", err)
}

// cycleFocus moves focus by dir, skipping sections with nothing to select.
func (m Model) cycleFocus(dir int) Model {
	next := m.focus
	for range sectionCount {
		next = (next + section(dir) + sectionCount) % sectionCount
		if m.focusable(next) {
			break
		}
	}
	return m.setFocus(next)
}

func (m Model) focusable(s section) bool {
	switch s {
	case sectionQuickAdd:
		return len(m.suggestions()) > 0
	case sectionItems:
		return m.store.Len() > 0
	default:
		return true
	}
}

func (m Model) setFocus(s section) Model {
	m.focus = s
	if s == sectionInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

// clampCursors keeps cursors inside their lists and moves focus off a
// section that became empty.
func (m Model) clampCursors() Model {
	m.quickCursor = clamp(m.quickCursor, len(m.suggestions()))
	m.itemCursor = clamp(m.itemCursor, m.store.Len())
	if !m.focusable(m.focus) {
		m = m.setFocus(sectionInput)
	}
	return m
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
