package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_CreateFolderCreatesAncestors(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFolder("a/b"))

	a, err := fs.Dir("a")
	require.NoError(t, err)
	assert.False(t, a.Collapsed)
	_, err = fs.Dir("a/b")
	require.NoError(t, err)

	// Creating it again is a no-op.
	require.NoError(t, fs.CreateFolder("a/b"))
	assert.Equal(t, []string{"b"}, a.Children.Names())
}

func TestFileSystem_CreateFile(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("src/utils/logger.js"))

	f, err := fs.File("src/utils/logger.js")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeTypeFile, f.Type)
	assert.Equal(t, "js", f.Language)
	assert.Equal(t, "", f.Content)
	assert.Equal(t, domain.Position{}, f.CaretPosition)
	assert.Equal(t, domain.Point{}, f.CursorPosition)

	_, err = fs.Dir("src/utils")
	assert.NoError(t, err, "ancestors must be created implicitly")

	f.Append("keep")
	require.NoError(t, fs.CreateFile("src/utils/logger.js"))
	f, _ = fs.File("src/utils/logger.js")
	assert.Equal(t, "keep", f.Content, "re-creating a file keeps its content")
}

func TestFileSystem_Conflicts(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("README.md"))
	require.NoError(t, fs.CreateFolder("src"))

	assert.ErrorIs(t, fs.CreateFolder("README.md"), domain.ErrPathConflict)
	assert.ErrorIs(t, fs.CreateFile("src"), domain.ErrPathConflict)
	assert.ErrorIs(t, fs.CreateFile("README.md/inner.txt"), domain.ErrPathConflict)

	_, err := fs.File("src")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	_, err = fs.File("missing.txt")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestFileSystem_InsertionOrder(t *testing.T) {
	fs := domain.NewFileSystem()
	for _, p := range []string{"zeta.txt", "alpha", "mid.go", "alpha/b.txt", "alpha/a.txt"} {
		if p == "alpha" {
			require.NoError(t, fs.CreateFolder(p))
			continue
		}
		require.NoError(t, fs.CreateFile(p))
	}
	assert.Equal(t, []string{"zeta.txt", "alpha", "mid.go"}, fs.Root().Names())
	assert.Equal(t, []string{"zeta.txt", "alpha/b.txt", "alpha/a.txt", "mid.go"}, fs.Files())
}

func TestFileSystem_Remove(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("src/a.js"))
	require.NoError(t, fs.CreateFile("src/lib/b.js"))
	require.NoError(t, fs.CreateFile("main.js"))

	removed, err := fs.Remove("src", domain.NodeTypeDirectory)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/lib/b.js"}, removed)
	assert.Equal(t, []string{"main.js"}, fs.Root().Names())

	_, err = fs.Remove("main.js", domain.NodeTypeDirectory)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	removed, err = fs.Remove("main.js", domain.NodeTypeFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.js"}, removed)
	assert.Equal(t, 0, fs.Root().Len())
}

func TestFileSystem_CloneIsDeep(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("src/a.js"))

	clone := fs.Clone()
	f, _ := clone.File("src/a.js")
	f.Append("changed")
	require.NoError(t, clone.CreateFile("src/b.js"))

	orig, _ := fs.File("src/a.js")
	assert.Equal(t, "", orig.Content)
	assert.Equal(t, []string{"src/a.js"}, fs.Files())
}

func TestNode_AppendAndBackspace(t *testing.T) {
	n := &domain.Node{Type: domain.NodeTypeFile}
	n.Append("const a = 1;\nlog(a)")
	assert.Equal(t, domain.Position{Row: 1, Col: 6}, n.CaretPosition)

	n.Backspace(6)
	assert.Equal(t, "const a = 1;\n", n.Content)
	assert.Equal(t, domain.Position{Row: 1, Col: 0}, n.CaretPosition)

	n.Append("héllo")
	n.Backspace(3)
	assert.Equal(t, "const a = 1;\nhé", n.Content, "backspace counts characters, not bytes")

	n.Backspace(1000)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, domain.Position{}, n.CaretPosition)
}

func TestTree_JSONKeepsOrder(t *testing.T) {
	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("src/z.js"))
	require.NoError(t, fs.CreateFile("src/a.js"))
	require.NoError(t, fs.CreateFolder("docs"))

	data, err := json.Marshal(fs.Root())
	require.NoError(t, err)
	assert.Regexp(t, `^\{"src":\{.*"children":\{"z.js":.*"a.js":.*\}\},"docs":`, string(data))

	var decoded domain.Tree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fs.Root(), &decoded)
}

func TestLanguageOf(t *testing.T) {
	cases := map[string]string{
		"src/hello-world.js": "js",
		"main.GO":            "go",
		"Makefile":           "",
		".gitignore":         "",
		"config/.env":        "",
		"archive.tar.gz":     "gz",
	}
	for p, want := range cases {
		assert.Equal(t, want, domain.LanguageOf(p), p)
	}
}
