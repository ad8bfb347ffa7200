package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAMLDocument(t *testing.T) {
	data := []byte(`
name: hello
description: Say hello from node.
actions:
  - name: file-explorer-create-file
    value: src/hello.js
  - file-explorer-open-file: src/hello.js
  - editor-type: |-
      console.log('hello');
      console.log('bye');
  - editor-backspace: 3
  - editor-save
`)
	s, err := script.Parse(data, script.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "hello", s.Name)
	assert.Equal(t, "Say hello from node.", s.Description)
	assert.Equal(t, []domain.Action{
		{Name: domain.ActionCreateFile, Value: "src/hello.js"},
		{Name: domain.ActionOpenFile, Value: "src/hello.js"},
		{Name: domain.ActionEditorType, Value: "console.log('hello');\nconsole.log('bye');"},
		{Name: domain.ActionEditorBackspace, Value: "3"},
		{Name: domain.ActionEditorSave},
	}, s.Actions)
}

func TestParse_JSONList(t *testing.T) {
	data := []byte(`[
		{"name": "file-explorer-create-folder", "value": "src"},
		{"name": "editor-save", "value": 1},
		{"author-speak-before": "Hi"}
	]`)
	s, err := script.Parse(data, script.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []domain.Action{
		{Name: domain.ActionCreateFolder, Value: "src"},
		{Name: domain.ActionEditorSave, Value: "1"},
		{Name: domain.ActionSpeakBefore, Value: "Hi"},
	}, s.Actions)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Scalar", `just text`},
		{"Typo", "- name: editor-type\n  vaule: x\n"},
		{"TwoShorthandKeys", "- editor-type: a\n  editor-save: 1\n"},
		{"MissingName", "- value: x\n"},
		{"NestedValue", "- editor-type:\n    a: b\n"},
		{"BadYAML", "- [unclosed"},
		{"UnknownDocumentKey", "title: x\nactions: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Parse([]byte(tt.data), script.FormatYAML)
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := script.Parse([]byte(""), script.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Actions)
}

func TestValidate(t *testing.T) {
	err := script.Validate([]domain.Action{
		{Name: domain.ActionCreateFile, Value: "a.js"},
		{Name: "editor-dance"},
		{Name: domain.ActionEditorBackspace, Value: "lots"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedAction)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "action 1 (editor-dance)")
	assert.Contains(t, err.Error(), "action 2 (editor-backspace)")

	assert.NoError(t, script.Validate(nil))
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.yaml"), []byte("- file-explorer-create-folder: src\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "named.json"), []byte(`{"name": "custom", "actions": []}`), 0644))

	var loader ports.ScriptLoader = script.NewLoader(dir)
	actions, err := loader.Load("intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, []domain.Action{{Name: domain.ActionCreateFolder, Value: "src"}}, actions)

	s, err := script.NewLoader(dir).LoadScript("intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, "intro", s.Name, "unnamed scripts take the file name")

	s, err = script.NewLoader("").LoadScript(filepath.Join(dir, "named.json"))
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Name)

	_, err = loader.Load("missing.yaml")
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, script.FormatJSON, script.FormatOf("a/b.JSON"))
	assert.Equal(t, script.FormatYAML, script.FormatOf("a/b.yml"))
	assert.Equal(t, script.FormatYAML, script.FormatOf("script"))
}
