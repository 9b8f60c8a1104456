package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/client"
	"github.com/nuss3d/foldserver/pkg/normalize"
)

// Matrix view styles
var (
	cellZeroStyle    = lipgloss.NewStyle().Foreground(colorDim)
	cellValueStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	cellCursorStyle  = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(colorCyan)
	axisStyle        = lipgloss.NewStyle().Foreground(colorGray)
	axisCurrentStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// viewCommand creates the command browsing a document interactively.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		server string
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "view <job-id|S.json>",
		Short: "Browse an S.json matrix in the terminal",
		Long: `Browse a folded matrix interactively.

The argument is either a path to an S.json document or a job id. Job ids are
fetched from the API unless --local is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, title, err := c.loadDocument(cmd, args[0], server, local)
			if err != nil {
				return err
			}
			if doc.S.Dim() == 0 {
				printInfo("%s is empty", title)
				return nil
			}
			_, err = tea.NewProgram(NewMatrixModel(doc.S, title), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&server, "server", client.DefaultBaseURL, "API base URL")
	cmd.Flags().BoolVar(&local, "local", false, "read job ids from the local jobs directory instead of the API")
	return cmd
}

// loadDocument resolves arg as a document path first, then as a job id.
func (c *CLI) loadDocument(cmd *cobra.Command, arg, server string, local bool) (*normalize.Document, string, error) {
	if f, err := os.Open(arg); err == nil {
		defer f.Close()
		doc, err := normalize.ReadDocument(f)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", arg, err)
		}
		return doc, arg, nil
	}

	data, err := c.fetchResult(cmd, arg, server, local)
	if err != nil {
		return nil, "", err
	}
	doc, err := normalize.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return doc, "job " + arg, nil
}

// MatrixModel is the bubbletea model for scrolling through a square matrix
// with a cell cursor.
type MatrixModel struct {
	Matrix normalize.Matrix
	Title  string

	Row, Col       int // cursor
	RowOff, ColOff int // top-left visible cell
	Rows, Cols     int // visible window in cells

	cellWidth int
}

// NewMatrixModel creates a matrix model with an 80x24 window until the
// terminal reports its size.
func NewMatrixModel(m normalize.Matrix, title string) MatrixModel {
	mm := MatrixModel{Matrix: m, Title: title, cellWidth: maxCellWidth(m)}
	mm.resize(80, 24)
	return mm
}

func maxCellWidth(m normalize.Matrix) int {
	w := len(strconv.Itoa(m.Dim()))
	for _, row := range m {
		for _, v := range row {
			w = max(w, len(strconv.Itoa(v)))
		}
	}
	return w
}

func (m *MatrixModel) resize(width, height int) {
	m.Rows = max(height-7, 3)
	m.Cols = max((width-m.cellWidth-2)/(m.cellWidth+1), 3)
	m.clamp()
}

// clamp keeps the cursor inside the matrix and the window around the cursor.
func (m *MatrixModel) clamp() {
	n := m.Matrix.Dim()
	m.Row = min(max(m.Row, 0), n-1)
	m.Col = min(max(m.Col, 0), n-1)

	if m.Row < m.RowOff {
		m.RowOff = m.Row
	}
	if m.Row >= m.RowOff+m.Rows {
		m.RowOff = m.Row - m.Rows + 1
	}
	if m.Col < m.ColOff {
		m.ColOff = m.Col
	}
	if m.Col >= m.ColOff+m.Cols {
		m.ColOff = m.Col - m.Cols + 1
	}
}

func (m MatrixModel) Init() tea.Cmd {
	return nil
}

func (m MatrixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Row--
		case "down", "j":
			m.Row++
		case "left", "h":
			m.Col--
		case "right", "l":
			m.Col++
		case "pgup":
			m.Row -= m.Rows
		case "pgdown", " ":
			m.Row += m.Rows
		case "home", "g":
			m.Row, m.Col = 0, 0
		case "end", "G":
			m.Row, m.Col = m.Matrix.Dim()-1, m.Matrix.Dim()-1
		case "d":
			// jump to the diagonal of the current row
			m.Col = m.Row
		}
		m.clamp()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m MatrixModel) View() string {
	var b strings.Builder
	n := m.Matrix.Dim()

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d×%d", n, n)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ move  pgup/pgdn page  g/G corners  d diagonal  q quit"))
	b.WriteString("\n\n")

	rowEnd := min(m.RowOff+m.Rows, n)
	colEnd := min(m.ColOff+m.Cols, n)
	pad := func(s string) string {
		return fmt.Sprintf("%*s", m.cellWidth, s)
	}

	b.WriteString(pad(""))
	for j := m.ColOff; j < colEnd; j++ {
		style := axisStyle
		if j == m.Col {
			style = axisCurrentStyle
		}
		b.WriteString(" ")
		b.WriteString(style.Render(pad(strconv.Itoa(j))))
	}
	b.WriteString("\n")

	for i := m.RowOff; i < rowEnd; i++ {
		style := axisStyle
		if i == m.Row {
			style = axisCurrentStyle
		}
		b.WriteString(style.Render(pad(strconv.Itoa(i))))
		for j := m.ColOff; j < colEnd; j++ {
			v := m.Matrix[i][j]
			cell := pad(strconv.Itoa(v))
			switch {
			case i == m.Row && j == m.Col:
				cell = cellCursorStyle.Render(cell)
			case v == 0:
				cell = cellZeroStyle.Render(cell)
			default:
				cell = cellValueStyle.Render(cell)
			}
			b.WriteString(" ")
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  S[%d][%d] = ", m.Row, m.Col)))
	b.WriteString(StyleNumber.Render(strconv.Itoa(m.Matrix[m.Row][m.Col])))
	return b.String()
}
