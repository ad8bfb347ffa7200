package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/internal/presentation/graph"
	"github.com/aretw0/virtualide/internal/presentation/tui"
	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/aretw0/virtualide/pkg/recorder"
)

// Output formats for replay.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMermaid = "mermaid"
)

// ReplayOptions contains all the configuration for the replay command.
type ReplayOptions struct {
	ScriptPath string
	Format     string
	// Step selects the frame to print; negative means the final frame.
	Step            int
	Record          bool // store the recording
	ContinueOnError bool
	Color           bool // render markdown through glamour
	Width           int
}

// ReplayResult is what a replay produced.
type ReplayResult struct {
	Script    *script.Script
	Recording *domain.Recording
}

// Replay loads a script, replays it into a recording and writes the selected
// frame to w. A rejected action stops the replay (unless ContinueOnError) and
// the frame before it is still printed.
func Replay(ctx context.Context, opts ReplayOptions, newIDE func() *virtualide.IDE, store ports.RecordingStore, w io.Writer, logger *slog.Logger) (*ReplayResult, error) {
	sc, err := script.NewLoader("").LoadScript(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Script loaded", "script", sc.Name, "actions", len(sc.Actions))

	recOpts := []recorder.Option{
		recorder.WithIDEFactory(newIDE),
		recorder.WithLogger(logger),
	}
	if opts.Record && store != nil {
		recOpts = append(recOpts, recorder.WithStore(store))
	}
	if opts.ContinueOnError {
		recOpts = append(recOpts, recorder.ContinueOnError())
	}

	rec, replayErr := recorder.New(recOpts...).Record(ctx, sc.Name, sc.Actions)
	res := &ReplayResult{Script: sc, Recording: rec}
	if rec == nil {
		return res, replayErr
	}

	frame, ok := rec.Final()
	if opts.Step >= 0 {
		frame, ok = rec.Frame(opts.Step)
		if !ok {
			return res, errors.Join(replayErr, fmt.Errorf("no frame for step %d (recording has %d frames)", opts.Step, len(rec.Frames)))
		}
	}
	if ok {
		if err := writeFrame(w, sc.Name, frame, opts); err != nil {
			return res, errors.Join(replayErr, err)
		}
	}

	for _, f := range rec.Failures {
		logger.Warn("Action skipped", "index", f.Index, "action", f.Action.Name, "code", f.Code, "err", f.Error)
	}
	return res, replayErr
}

func writeFrame(w io.Writer, title string, frame domain.Frame, opts ReplayOptions) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(frame.Snapshot)

	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(frame.Snapshot.EditorSnapshot.FileStructure, graph.OverlayFrom(frame.Snapshot)))
		return err

	case FormatText, "":
		render := tui.NewPlainRenderer()
		if opts.Color {
			render = tui.NewRenderer(opts.Width)
		}
		heading := title
		if frame.Action != nil {
			heading = fmt.Sprintf("%s, step %d: %s", title, frame.Step, frame.Action.Name)
		}
		out, err := render(tui.SnapshotMarkdown(heading, frame.Snapshot))
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err

	default:
		return fmt.Errorf("unknown format %q (want text, json or mermaid)", opts.Format)
	}
}
