package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/virtualide/pkg/domain"
)

// EditorOverlay contains editor state to visualize on the tree.
type EditorOverlay struct {
	OpenFiles   []string
	CurrentFile string
}

// OverlayFrom extracts the overlay of a snapshot.
func OverlayFrom(snap domain.CourseSnapshot) *EditorOverlay {
	return &EditorOverlay{
		OpenFiles:   snap.EditorSnapshot.OpenFiles,
		CurrentFile: snap.EditorSnapshot.CurrentFile,
	}
}

// GenerateMermaid produces a Mermaid flowchart of a file tree.
// It applies semantic styling:
// - Workspace root: ((Circle))
// - Directory: [["Subroutine/"]]
// - File: ["Rectangle"]
// Children of collapsed directories hang off dotted edges.
// It also applies overlay styles (Open/Current) if provided.
func GenerateMermaid(tree *domain.Tree, overlay *EditorOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    root((\"workspace\"))\n")

	collapsed := make(map[string]bool)
	tree.Walk(func(p string, n *domain.Node) {
		safeID := sanitizeMermaidID(p)
		name := escapeLabel(path.Base(p))

		if n.IsDir() {
			sb.WriteString(fmt.Sprintf("    %s[[\"%s/\"]]\n", safeID, name))
			if n.Collapsed {
				collapsed[p] = true
			}
		} else {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, name))
		}

		parent, arrow := "root", "-->"
		if dir := path.Dir(p); dir != "." {
			parent = sanitizeMermaidID(dir)
			if collapsed[dir] {
				arrow = "-.->"
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, safeID))
	})

	// Apply Overlay Styles
	if overlay != nil && (len(overlay.OpenFiles) > 0 || overlay.CurrentFile != "") {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef open fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, p := range overlay.OpenFiles {
			if p == overlay.CurrentFile {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s open;\n", sanitizeMermaidID(p)))
		}
		if overlay.CurrentFile != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentFile)))
		}
	}

	return sb.String()
}

// sanitizeMermaidID maps a path to a node ID. The "p_" prefix keeps paths
// from clashing with Mermaid keywords and the root node.
func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "__")
	s = strings.ReplaceAll(s, " ", "_")
	return "p_" + s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
