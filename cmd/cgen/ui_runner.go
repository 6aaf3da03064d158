package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cgen/internal/pipeline"
	"cgen/internal/ui"
)

type batchOutcome struct {
	results []pipeline.Result
	err     error
}

func runBatchWithUI(ctx context.Context, recipePaths []string, req pipeline.Request) ([]pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		results, err := pipeline.Run(ctx, reqCopy)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("generating", recipePaths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
