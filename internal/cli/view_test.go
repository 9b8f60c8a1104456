package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nuss3d/foldserver/pkg/normalize"
)

func testMatrix(n int) normalize.Matrix {
	m := normalize.NewMatrix(n)
	for i := range n {
		for j := i; j < n; j++ {
			m[i][j] = i*n + j
		}
	}
	return m
}

func press(m MatrixModel, keys ...string) MatrixModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(MatrixModel)
	}
	return m
}

func TestMatrixModelCursorStaysInBounds(t *testing.T) {
	m := NewMatrixModel(testMatrix(4), "test")

	m = press(m, "up", "left")
	if m.Row != 0 || m.Col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", m.Row, m.Col)
	}

	m = press(m, "G", "down", "right")
	if m.Row != 3 || m.Col != 3 {
		t.Errorf("cursor = (%d,%d), want (3,3)", m.Row, m.Col)
	}

	m = press(m, "g", "j", "j", "d")
	if m.Row != 2 || m.Col != 2 {
		t.Errorf("cursor = (%d,%d), want (2,2)", m.Row, m.Col)
	}
}

func TestMatrixModelScrollsWindow(t *testing.T) {
	m := NewMatrixModel(testMatrix(200), "big")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(MatrixModel)

	if m.Rows != 13 {
		t.Fatalf("visible rows = %d, want 13", m.Rows)
	}
	for range 20 {
		m = press(m, "down", "right")
	}
	if m.Row != 20 || m.RowOff != 20-m.Rows+1 {
		t.Errorf("row = %d offset = %d", m.Row, m.RowOff)
	}
	if m.Col-m.ColOff >= m.Cols || m.Col < m.ColOff {
		t.Errorf("column %d outside window [%d,%d)", m.Col, m.ColOff, m.ColOff+m.Cols)
	}

	m = press(m, "g")
	if m.RowOff != 0 || m.ColOff != 0 {
		t.Errorf("offsets after g = (%d,%d), want (0,0)", m.RowOff, m.ColOff)
	}
}

func TestMatrixModelView(t *testing.T) {
	m := NewMatrixModel(normalize.Matrix{{1, 2}, {0, 3}}, "job abc")
	m = press(m, "right")

	view := m.View()
	for _, want := range []string{"job abc", "2×2", "S[0][1] = ", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMatrixModelQuit(t *testing.T) {
	_, cmd := NewMatrixModel(testMatrix(2), "t").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLoadDocumentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "S.json")
	if err := os.WriteFile(path, []byte(`{"S":[[5,6],[0,7]]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	doc, title, err := c.loadDocument(c.viewCommand(), path, "", false)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if title != path || doc.S.Dim() != 2 || doc.S[1][1] != 7 {
		t.Errorf("loadDocument = %v, %q", doc.S, title)
	}
}

func TestLoadDocumentRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "S.json")
	if err := os.WriteFile(path, []byte(`{"S":[[1,2],[3]]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if _, _, err := c.loadDocument(c.viewCommand(), path, "", false); err == nil {
		t.Fatal("expected an error for a ragged matrix")
	}
}
