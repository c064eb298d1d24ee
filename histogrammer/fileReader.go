package main

import (
	"fmt"
	"os"

	eventlist "github.com/next-exp/eventlist_go/pkg"
)

// loadWorkspace reads the event file into a workspace. Detectors are mapped
// to spectra with mapping when it is not empty, otherwise in order of first
// appearance.
func loadWorkspace(filename string, mapping map[int32]int) (*eventlist.Workspace, uint32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, &eventlist.ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	var ws *eventlist.Workspace
	if len(mapping) > 0 {
		ws = eventlist.NewWorkspaceFromMapping(mapping)
	} else {
		ws = eventlist.NewWorkspace(0)
	}

	reader := eventlist.NewEventReader(file)
	header, err := reader.ReadHeader()
	if err != nil {
		return nil, 0, err
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events in file: %d", header.NumEvents)
		logger.Info(message, "fileReader")
	}

	added, err := reader.ReadInto(ws, configuration.Skip, configuration.MaxEvents)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading events: %w", err)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Read %d events into %d spectra", added, ws.NumberOfSpectra())
		logger.Info(message, "fileReader")
	}
	return ws, header.RunNumber, nil
}
