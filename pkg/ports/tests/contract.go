package tests

import (
	"testing"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terminalCmd(t *testing.T, name, value string) domain.TerminalCommand {
	t.Helper()
	cmd, err := domain.Parse(domain.Action{Name: name, Value: value})
	require.NoError(t, err)
	tc, ok := cmd.(domain.TerminalCommand)
	require.True(t, ok, "%s should parse to a terminal command", name)
	return tc
}

func authorCmd(t *testing.T, name, value string) domain.AuthorCommand {
	t.Helper()
	cmd, err := domain.Parse(domain.Action{Name: name, Value: value})
	require.NoError(t, err)
	ac, ok := cmd.(domain.AuthorCommand)
	require.True(t, ok, "%s should parse to an author command", name)
	return ac
}

// TerminalContractTest is a reusable test suite that verifies if an adapter complies with ports.Terminal.
// newTerminal must return a fresh, empty terminal on each call.
func TerminalContractTest(t *testing.T, newTerminal func() ports.Terminal) {
	t.Helper()

	t.Run("Starts_Empty", func(t *testing.T) {
		assert.Equal(t, "", newTerminal().Contents())
	})

	t.Run("Type_Appends", func(t *testing.T) {
		term := newTerminal()
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalOpen, "1")))
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalType, "node ")))
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalType, "src/app.js")))
		assert.Equal(t, "node src/app.js", term.Contents())
	})

	t.Run("Enter_Clears", func(t *testing.T) {
		term := newTerminal()
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalType, "ls")))
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalEnter, "1")))
		assert.Equal(t, "", term.Contents())
	})

	t.Run("Open_Keeps_Buffer", func(t *testing.T) {
		term := newTerminal()
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalType, "pwd")))
		require.NoError(t, term.ConsumeAction(terminalCmd(t, domain.ActionTerminalOpen, "1")))
		assert.Equal(t, "pwd", term.Contents())
	})
}

// AuthorContractTest is a reusable test suite that verifies if an adapter complies with ports.Author.
// newAuthor must return a fresh author with no caption on each call.
func AuthorContractTest(t *testing.T, newAuthor func() ports.Author) {
	t.Helper()

	t.Run("Starts_Silent", func(t *testing.T) {
		assert.Equal(t, "", newAuthor().CurrentSpeechCaption())
	})

	for _, name := range []string{domain.ActionSpeakBefore, domain.ActionSpeakAfter, domain.ActionSpeakDuring} {
		t.Run("Caption_"+name, func(t *testing.T) {
			a := newAuthor()
			require.NoError(t, a.ConsumeAction(authorCmd(t, name, "first")))
			require.NoError(t, a.ConsumeAction(authorCmd(t, name, "second")))
			assert.Equal(t, "second", a.CurrentSpeechCaption(), "the latest caption replaces the previous one")
		})
	}
}
