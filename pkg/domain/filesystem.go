package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode/utf8"
)

// NodeType distinguishes files from directories.
type NodeType string

const (
	NodeTypeFile      NodeType = "file"
	NodeTypeDirectory NodeType = "directory"
)

// Position is a logical caret location within a file's content.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Point is a visual (pixel-space) location.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is an entry of the file tree. Files use Content, Language,
// CaretPosition and CursorPosition; directories use Collapsed and Children.
type Node struct {
	Type           NodeType `json:"type"`
	Content        string   `json:"content"`
	Language       string   `json:"language,omitempty"`
	CaretPosition  Position `json:"caretPosition"`
	CursorPosition Point    `json:"cursorPosition"`
	Collapsed      bool     `json:"collapsed"`
	Children       *Tree    `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Type == NodeTypeDirectory
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = n.Children.Clone()
	return &c
}

func newFile(p string) *Node {
	return &Node{Type: NodeTypeFile, Language: LanguageOf(p)}
}

func newDir() *Node {
	return &Node{Type: NodeTypeDirectory, Children: NewTree()}
}

// Tree is an ordered mapping from name to Node. Insertion order is
// preserved and names are unique.
type Tree struct {
	names []string
	nodes map[string]*Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// Len returns the number of direct children.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns the child names in insertion order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}

// Get returns the named child.
func (t *Tree) Get(name string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.nodes[name]
	return n, ok
}

// Walk visits every node depth-first in insertion order.
// The path passed to fn is relative to the tree.
func (t *Tree) Walk(fn func(p string, n *Node)) {
	t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(p string, n *Node)) {
	if t == nil {
		return
	}
	for _, name := range t.names {
		n := t.nodes[name]
		p := name
		if prefix != "" {
			p = prefix + "/" + name
		}
		fn(p, n)
		if n.IsDir() {
			n.Children.walk(p, fn)
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	c := &Tree{nodes: make(map[string]*Node, len(t.nodes))}
	if len(t.names) > 0 {
		c.names = slices.Clone(t.names)
	}
	for name, n := range t.nodes {
		c.nodes[name] = n.Clone()
	}
	return c
}

func (t *Tree) put(name string, n *Node) {
	if _, exists := t.nodes[name]; !exists {
		t.names = append(t.names, name)
	}
	t.nodes[name] = n
}

func (t *Tree) remove(name string) {
	if _, exists := t.nodes[name]; !exists {
		return
	}
	delete(t.nodes, name)
	i := slices.Index(t.names, name)
	t.names = slices.Delete(t.names, i, i+1)
	if len(t.names) == 0 {
		t.names = nil
	}
}

// MarshalJSON encodes the tree as a JSON object whose keys keep insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if t != nil {
		for i, name := range t.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(t.nodes[name])
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (t *Tree) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("file tree: expected object, got %v", tok)
	}
	*t = Tree{nodes: make(map[string]*Node)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("file tree: expected key, got %v", tok)
		}
		var n Node
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("file tree entry %q: %w", name, err)
		}
		if n.IsDir() && n.Children == nil {
			n.Children = NewTree()
		}
		t.put(name, &n)
	}
	_, err = dec.Token()
	return err
}

// FileSystem is the virtual file tree rooted at an unnamed directory.
type FileSystem struct {
	root *Tree
}

// NewFileSystem returns an empty file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{root: NewTree()}
}

// Root exposes the top-level tree. Callers must not mutate it.
func (fs *FileSystem) Root() *Tree {
	return fs.root
}

// Clone returns a deep copy of the file system.
func (fs *FileSystem) Clone() *FileSystem {
	return &FileSystem{root: fs.root.Clone()}
}

// CreateFolder creates a directory at p along with any missing ancestors.
// An existing directory is left untouched.
func (fs *FileSystem) CreateFolder(p string) error {
	parent, name, err := fs.ensureParent(p)
	if err != nil {
		return err
	}
	if existing, ok := parent.Get(name); ok {
		if !existing.IsDir() {
			return fmt.Errorf("%w: %s is a file", ErrPathConflict, p)
		}
		return nil
	}
	parent.put(name, newDir())
	return nil
}

// CreateFile creates an empty file at p along with any missing ancestors.
// An existing file keeps its content.
func (fs *FileSystem) CreateFile(p string) error {
	parent, name, err := fs.ensureParent(p)
	if err != nil {
		return err
	}
	if existing, ok := parent.Get(name); ok {
		if existing.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrPathConflict, p)
		}
		return nil
	}
	parent.put(name, newFile(p))
	return nil
}

// Lookup resolves p to a node of any type.
func (fs *FileSystem) Lookup(p string) (*Node, bool) {
	segments := strings.Split(p, "/")
	tree := fs.root
	for i, seg := range segments {
		n, ok := tree.Get(seg)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return n, true
		}
		if !n.IsDir() {
			return nil, false
		}
		tree = n.Children
	}
	return nil, false
}

// File resolves p to a file node.
func (fs *FileSystem) File(p string) (*Node, error) {
	n, ok := fs.Lookup(p)
	if !ok || n.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
	}
	return n, nil
}

// Dir resolves p to a directory node.
func (fs *FileSystem) Dir(p string) (*Node, error) {
	n, ok := fs.Lookup(p)
	if !ok || !n.IsDir() {
		return nil, fmt.Errorf("%w: directory %s", ErrFileNotFound, p)
	}
	return n, nil
}

// Remove deletes the node at p, which must be of type want.
// It returns the paths of every file removed, in tree order.
func (fs *FileSystem) Remove(p string, want NodeType) ([]string, error) {
	n, ok := fs.Lookup(p)
	if !ok || n.Type != want {
		return nil, fmt.Errorf("%w: %s %s", ErrFileNotFound, want, p)
	}

	var removed []string
	if n.IsDir() {
		n.Children.Walk(func(child string, c *Node) {
			if !c.IsDir() {
				removed = append(removed, p+"/"+child)
			}
		})
	} else {
		removed = append(removed, p)
	}

	parent := fs.root
	if dir, _ := splitPath(p); dir != "" {
		d, _ := fs.Lookup(dir)
		parent = d.Children
	}
	_, name := splitPath(p)
	parent.remove(name)
	return removed, nil
}

// Files returns every file path in tree order.
func (fs *FileSystem) Files() []string {
	var files []string
	fs.root.Walk(func(p string, n *Node) {
		if !n.IsDir() {
			files = append(files, p)
		}
	})
	return files
}

func (fs *FileSystem) ensureParent(p string) (*Tree, string, error) {
	segments := strings.Split(p, "/")
	tree := fs.root
	for i, seg := range segments[:len(segments)-1] {
		n, ok := tree.Get(seg)
		if !ok {
			n = newDir()
			tree.put(seg, n)
		} else if !n.IsDir() {
			return nil, "", fmt.Errorf("%w: %s is a file", ErrPathConflict, strings.Join(segments[:i+1], "/"))
		}
		tree = n.Children
	}
	return tree, segments[len(segments)-1], nil
}

// CleanPath normalises a slash-delimited path: surrounding whitespace,
// leading, trailing and repeated slashes are dropped. Empty paths and
// "." or ".." segments are rejected.
func CleanPath(p string) (string, error) {
	var segments []string
	for _, seg := range strings.Split(strings.TrimSpace(p), "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return strings.Join(segments, "/"), nil
}

func splitPath(p string) (dir, name string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

// LanguageOf infers the editor language from a file extension,
// e.g. "src/app.js" -> "js". Files without an extension have no language.
func LanguageOf(p string) string {
	ext := path.Ext(p)
	if ext == "" || ext == p || strings.HasSuffix(p, "/"+ext) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// caretAtEnd returns the caret position just past the last character of content.
func caretAtEnd(content string) Position {
	row := strings.Count(content, "\n")
	last := content
	if i := strings.LastIndexByte(content, '\n'); i >= 0 {
		last = content[i+1:]
	}
	return Position{Row: row, Col: utf8.RuneCountInString(last)}
}
