package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. ANSI 256 codes render the same on light and dark terminals.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles, shared with the matrix viewer.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusIcon pairs a glyph with its color.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

func (i statusIcon) String() string { return i.style.Render(i.glyph) }

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	iconInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// Fold provenance tags used in summaries.
var (
	tagCached = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	tagSolved = lipgloss.NewStyle().Foreground(colorGray).Render("solved")
)

func status(icon statusIcon, msg string) {
	fmt.Println(icon.String() + " " + msg)
}

func printSuccess(format string, args ...any) { status(iconSuccess, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { status(iconError, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { status(iconInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile points at a file that was written.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints an aligned "label value" line.
func printKeyValue(key, value string) {
	fmt.Println("  " + styleLabel.Render(key) + StyleValue.Render(value))
}

// foldSummary renders e.g. "  120×120 · degenerate block · cached".
func foldSummary(dimension int, degenerate, cached bool) string {
	parts := []string{StyleNumber.Render(fmt.Sprintf("%d×%d", dimension, dimension))}
	if degenerate {
		parts = append(parts, StyleWarning.Render("degenerate block"))
	}
	if cached {
		parts = append(parts, tagCached)
	} else {
		parts = append(parts, tagSolved)
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
