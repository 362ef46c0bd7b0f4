package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cxxpy/internal/pipeline"
	"cxxpy/internal/ui"
)

type lowerOutcome struct {
	results []pipeline.FileResult
	err     error
}

func runLowerWithUI(ctx context.Context, title string, req *pipeline.Request) ([]pipeline.FileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing lower request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.LowerFiles(ctx, &reqCopy)
		outcomeCh <- lowerOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
