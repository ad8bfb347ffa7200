package dsl

// FileBuilder provides a fluent API for typing into one file.
// Edits go to whichever file is current; call Resume after working on
// another file.
type FileBuilder struct {
	path    string
	builder *Builder
}

// Type appends text.
func (f *FileBuilder) Type(text string) *FileBuilder {
	f.builder.Type(text)
	return f
}

// Line appends text followed by a newline.
func (f *FileBuilder) Line(text string) *FileBuilder {
	f.builder.Type(text + "\n")
	return f
}

// Backspace deletes the last n characters.
func (f *FileBuilder) Backspace(n int) *FileBuilder {
	f.builder.Backspace(n)
	return f
}

// Enter appends n newlines.
func (f *FileBuilder) Enter(n int) *FileBuilder {
	f.builder.Enter(n)
	return f
}

// Save saves the file.
func (f *FileBuilder) Save() *FileBuilder {
	f.builder.Save()
	return f
}

// Resume switches back to this file after working elsewhere.
func (f *FileBuilder) Resume() *FileBuilder {
	f.builder.ClickFilename(f.path).ClickEditor()
	return f
}

// Done returns to the script builder.
func (f *FileBuilder) Done() *Builder {
	return f.builder
}
