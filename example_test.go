package virtualide_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/pkg/domain"
)

// ExampleNewDefault replays a short script and inspects the resulting snapshot.
func ExampleNewDefault() {
	ide := virtualide.NewDefault()
	ctx := context.Background()

	err := ide.ApplyActions(ctx, []domain.Action{
		{Name: domain.ActionSpeakBefore, Value: "Let's say hello."},
		{Name: domain.ActionCreateFile, Value: "src/hello.js"},
		{Name: domain.ActionOpenFile, Value: "src/hello.js"},
		{Name: domain.ActionEditorType, Value: "console.log('hello');"},
		{Name: domain.ActionTerminalType, Value: "node src/hello.js"},
	})
	if err != nil {
		log.Fatal(err)
	}

	snap := ide.Snapshot()
	content, _ := ide.FileContents("src/hello.js")
	fmt.Println(snap.EditorSnapshot.CurrentFile)
	fmt.Println(content)
	fmt.Println(snap.EditorSnapshot.TerminalContents)
	fmt.Println(snap.AuthorSnapshot.CurrentSpeechCaption)
	// Output:
	// src/hello.js
	// console.log('hello');
	// node src/hello.js
	// Let's say hello.
}

// ExampleIDE_ApplyActions shows how a failing action is reported.
func ExampleIDE_ApplyActions() {
	ide := virtualide.NewDefault()

	err := ide.ApplyActions(context.Background(), []domain.Action{
		{Name: domain.ActionCreateFile, Value: "main.go"},
		{Name: domain.ActionEditorType, Value: "package main"},
	})

	var actionErr *domain.ActionError
	if errors.As(err, &actionErr) {
		fmt.Println(actionErr.Index, domain.ErrorCode(err))
	}
	// Output:
	// 1 no_active_file
}
