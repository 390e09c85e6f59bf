package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out := Render("# Habitat\n\nDense **montane** forest.")
	assert.Contains(t, out, "<h1>Habitat</h1>")
	assert.Contains(t, out, "<strong>montane</strong>")
}

func TestRenderEmptyInput(t *testing.T) {
	assert.Equal(t, "", Render(""))
	assert.Equal(t, "", Render("   \n\t"))
}

func TestRenderGFMTable(t *testing.T) {
	out := Render("| Threat | Severity |\n| --- | --- |\n| Logging | High |")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Logging</td>")
}

func TestRenderAutolink(t *testing.T) {
	out := Render("See https://www.iucnredlist.org for details.")
	assert.Contains(t, out, `<a href="https://www.iucnredlist.org"`)
}
