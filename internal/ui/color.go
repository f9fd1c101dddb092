// Package ui holds the terminal colours and tables shared by the commands
package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// Status colours a behavioral status for terminal output.
func Status(s models.Status) string {
	switch s {
	case models.OnTask:
		return Green(s.Label())
	case models.OffTask:
		return Red(s.Label())
	case models.Transitioning:
		return Cyan(s.Label())
	}

	return string(s)
}
