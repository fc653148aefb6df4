package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_PadsToWidestLine(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out, &out)
	SetColorForcing(false, true)
	SetTheme("mono")
	defer SetTheme("classic")

	Panel([]string{"Bob", "Description: friend"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "+"+strings.Repeat("-", 21)+"+", lines[0])
	assert.Equal(t, "| Bob"+strings.Repeat(" ", 17)+"|", lines[1])
}

func TestOKAndFail(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	SetColorForcing(false, true)
	SetTheme("classic")

	OK("saved")
	Fail("boom")
	assert.Equal(t, "✔ saved\n", out.String())
	assert.Equal(t, "✖ boom\n", errOut.String())
}
