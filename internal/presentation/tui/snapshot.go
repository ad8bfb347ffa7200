package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/virtualide/pkg/domain"
)

// SnapshotMarkdown describes a snapshot as a markdown document: the file
// tree, every open editor tab, the terminal and the current caption.
func SnapshotMarkdown(title string, snap domain.CourseSnapshot) string {
	var sb strings.Builder
	ed := snap.EditorSnapshot

	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}

	if caption := snap.AuthorSnapshot.CurrentSpeechCaption; caption != "" {
		fmt.Fprintf(&sb, "> %s\n\n", caption)
	}

	sb.WriteString("## Files\n\n")
	if ed.FileStructure.Len() == 0 {
		sb.WriteString("_empty workspace_\n\n")
	} else {
		ed.FileStructure.Walk(func(p string, n *domain.Node) {
			depth := strings.Count(p, "/")
			name := path.Base(p)
			switch {
			case n.IsDir() && n.Collapsed:
				name += "/ (collapsed)"
			case n.IsDir():
				name += "/"
			case p == ed.CurrentFile:
				name = "**" + name + "**"
			}
			fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", depth), name)
		})
		sb.WriteString("\n")
	}

	if len(ed.Editors) > 0 {
		sb.WriteString("## Editor\n\n")
		for _, tab := range ed.Editors {
			marker := ""
			if tab.Current {
				marker = " (current)"
			}
			if tab.Unsaved {
				marker += " *unsaved*"
			}
			fmt.Fprintf(&sb, "### %s%s\n\n", tab.Path, marker)
			writeFence(&sb, tab.Language, tab.Content)
			fmt.Fprintf(&sb, "caret %d:%d\n\n", tab.Caret.Row, tab.Caret.Col)
		}
	}

	if ed.TerminalContents != "" {
		sb.WriteString("## Terminal\n\n")
		writeFence(&sb, "sh", "$ "+ed.TerminalContents)
	}

	m := snap.MouseSnapshot
	fmt.Fprintf(&sb, "---\n\nfocus: %s, mouse: %s at (%g, %g), tick %d\n",
		focusLabel(ed.Focus), m.Type, m.X, m.Y, m.Timestamp)

	return sb.String()
}

func focusLabel(f domain.Focus) string {
	if f == domain.FocusNone {
		return "none"
	}
	return string(f)
}

// writeFence writes content as a fenced code block whose fence is longer
// than any backtick run inside it.
func writeFence(sb *strings.Builder, lang, content string) {
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}
	fmt.Fprintf(sb, "%s%s\n%s\n%s\n\n", fence, lang, content, fence)
}
