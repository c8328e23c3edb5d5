package keyfile

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "key.pem")
	assert.Equal(t, Selection{Path: abs}, Resolve(abs))
	assert.Equal(t, Selection{Path: "key.pem", Partial: true}, Resolve("  key.pem "))

	home := Resolve("~/.oci/key.pem")
	assert.False(t, home.Partial)
	assert.Equal(t, "key.pem", filepath.Base(home.Path))
}

func TestOpenFallsBackToTyping(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "missing"))
	p.Open()
	require.True(t, p.Typing())

	for _, r := range "key.pem" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	assert.Equal(t, Selection{Path: "key.pem", Partial: true}, msg.Selection)
}

func TestEscCancels(t *testing.T) {
	p := New(t.TempDir())
	p.Open()
	assert.False(t, p.Typing())

	cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{}, cmd())
}

func TestEmptyTypedInputIsIgnored(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "missing"))
	p.Open()
	assert.Nil(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
}
