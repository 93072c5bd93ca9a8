package combinations

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

func testState() *app.State {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetDraws([]models.DrawRecord{
		{Date: "2024/03/12", Numbers: []int{3, 17, 22, 30, 39}},
		{Date: "2024/03/11", Numbers: []int{17, 3, 8, 12, 25}},
	}, "file")
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_View(t *testing.T) {
	m := New(testState())
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{
		"Combinations",
		"19 of 741 pairs drawn",
		"Most frequent pair 03-17 drawn together 2 times (100.00%)",
		"Last drawn",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}

	rows := m.table.Rows()
	if len(rows) != 19 {
		t.Fatalf("rows = %d, want 19 drawn pairs", len(rows))
	}
	if rows[0][1] != "03-17" || rows[0][2] != "2" || rows[0][4] != "2024/03/12" {
		t.Errorf("first row = %v", rows[0])
	}
}

func TestModel_ToggleZero(t *testing.T) {
	m := New(testState())
	m.SetSize(100, 60)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if !m.showZero {
		t.Fatal("z should show unseen pairs")
	}
	m.View()

	rows := m.table.Rows()
	if len(rows) != 741 {
		t.Fatalf("rows = %d, want 741", len(rows))
	}
	if last := rows[len(rows)-1]; last[2] != "0" || last[4] != "-" {
		t.Errorf("last row = %v", last)
	}
}

func TestLastDrawn(t *testing.T) {
	last := lastDrawn([]models.DrawRecord{
		{Date: "2024/03/12", Numbers: []int{5, 1, 2, 3, 4}},
		{Date: "2024/03/11", Numbers: []int{1, 5, 9, 10, 11}},
	})
	if got := last[models.Pair{Low: 1, High: 5}]; got != "2024/03/12" {
		t.Errorf("1-5 last drawn %q, want 2024/03/12", got)
	}
	if got := last[models.Pair{Low: 9, High: 11}]; got != "2024/03/11" {
		t.Errorf("9-11 last drawn %q, want 2024/03/11", got)
	}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if view := m.View(); !strings.Contains(view, "No draws in the selected window") {
		t.Error("View should show the empty state")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
