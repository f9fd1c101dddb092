package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/ontask/internal/models"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer

	PrintTable([][]string{
		{"#", "STUDENT"},
		{"1", "JD"},
	}, &buf)

	out := buf.String()

	assert.Contains(t, out, "STUDENT")
	assert.Contains(t, out, "JD")
}

func TestStatus(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	assert.Contains(t, Status(models.OnTask), "On task")
	assert.Contains(t, Status(models.OffTask), "Off task")
	assert.Contains(t, Status(models.Transitioning), "Transitioning")
	assert.Equal(t, "asleep", Status("asleep"))
}
