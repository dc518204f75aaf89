package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tongue/internal/driver"
	"tongue/internal/ui"
)

type runOutcome[T any] struct {
	result T
	err    error
}

// runWithUI executes run in the background with a progress sink attached and
// renders its events until run returns.
func runWithUI[T any](title string, files []string, opts driver.Options, run func(driver.Options) (T, error)) (T, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome[T], 1)

	go func() {
		withSink := opts
		withSink.Progress = driver.ChannelSink{Ch: events}
		res, err := run(withSink)
		outcomeCh <- runOutcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после Ctrl+C модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
