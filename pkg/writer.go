package eventlist

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer stores workspaces in an HDF5 file:
//
//	/Run/runInfo           run number and total events
//	/Run/splitters         intervals used to produce the file, if any
//	/Spectra/detectors     (spectrum, detector_id) rows
//	/Events/events         (spectrum, tof, pulse_time) rows
//	/Histograms/bin_edges  shared bin edges
//	/Histograms/counts     one row of counts per spectrum
//	/Histograms/errors     one row of errors per spectrum
type Writer struct {
	File            *hdf5.File
	Filename        string
	RunGroup        *hdf5.Group
	SpectraGroup    *hdf5.Group
	EventsGroup     *hdf5.Group
	HistogramGroup  *hdf5.Group
	RunInfoTable    *hdf5.Dataset
	SplitterTable   *hdf5.Dataset
	DetectorTable   *hdf5.Dataset
	EventTable      *hdf5.Dataset
	BinEdges        *hdf5.Dataset
	Counts          *hdf5.Dataset
	Errors          *hdf5.Dataset
	EventCounter    int
	DetectorCounter int
	SpectrumCounter int
}

func NewWriter(filename string) (*Writer, error) {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")
	}

	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer := &Writer{File: file, Filename: filename}

	groups := []struct {
		name  string
		group **hdf5.Group
	}{
		{"Run", &writer.RunGroup},
		{"Spectra", &writer.SpectraGroup},
		{"Events", &writer.EventsGroup},
		{"Histograms", &writer.HistogramGroup},
	}
	for _, g := range groups {
		if *g.group, err = createGroup(file, g.name); err != nil {
			return nil, errors.Join(err, writer.Close())
		}
	}

	tables := []struct {
		group    *hdf5.Group
		name     string
		datatype interface{}
		dataset  **hdf5.Dataset
	}{
		{writer.RunGroup, "runInfo", RunInfoHDF5{}, &writer.RunInfoTable},
		{writer.RunGroup, "splitters", SplitterHDF5{}, &writer.SplitterTable},
		{writer.SpectraGroup, "detectors", DetectorHDF5{}, &writer.DetectorTable},
		{writer.EventsGroup, "events", EventHDF5{}, &writer.EventTable},
	}
	for _, t := range tables {
		if *t.dataset, err = createTable(t.group, t.name, t.datatype); err != nil {
			return nil, errors.Join(err, writer.Close())
		}
	}
	return writer, nil
}

func (w *Writer) WriteRunInfo(runNumber int, nEvents int) error {
	info := []RunInfoHDF5{{run_number: int32(runNumber), n_events: int64(nEvents)}}
	return writeArrayToTable(w.RunInfoTable, "runInfo", &info, 0)
}

func (w *Writer) WriteSplitter(splitter TimeSplitter) error {
	rows := make([]SplitterHDF5, len(splitter))
	for i, interval := range splitter {
		rows[i] = SplitterHDF5{
			start:       interval.Start,
			stop:        interval.Stop,
			destination: int32(interval.Index),
		}
	}
	return writeArrayToTable(w.SplitterTable, "splitters", &rows, 0)
}

// WriteEvents appends the events and detector IDs of every spectrum.
func (w *Writer) WriteEvents(ws *Workspace) error {
	for i := 0; i < ws.NumberOfSpectra(); i++ {
		el := ws.EventList(i)

		ids := el.DetectorIDs()
		detectors := make([]DetectorHDF5, len(ids))
		for j, id := range ids {
			detectors[j] = DetectorHDF5{spectrum: int32(i), detector_id: id}
		}
		if err := writeArrayToTable(w.DetectorTable, "detectors", &detectors, w.DetectorCounter); err != nil {
			return err
		}
		w.DetectorCounter += len(detectors)

		events := el.Events()
		rows := make([]EventHDF5, len(events))
		for j, event := range events {
			rows[j] = EventHDF5{spectrum: int32(i), tof: event.Tof(), pulse_time: event.PulseTime()}
		}
		if err := writeArrayToTable(w.EventTable, "events", &rows, w.EventCounter); err != nil {
			return err
		}
		w.EventCounter += len(rows)
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Wrote %d events of %d spectra to %s", w.EventCounter, ws.NumberOfSpectra(), w.Filename)
		logger.Info(message, "writer")
	}
	return nil
}

// WriteHistograms writes the bin edges once and appends one row of counts
// and errors per spectrum.
func (w *Writer) WriteHistograms(edges []float64, counts [][]float64, errs [][]float64) error {
	if len(edges) <= 1 {
		return nil
	}
	nBins := len(edges) - 1
	if w.BinEdges == nil {
		var err error
		if w.BinEdges, err = create1dArray(w.HistogramGroup, "bin_edges", len(edges)); err != nil {
			return err
		}
		if err := write1dArray(w.BinEdges, "bin_edges", &edges); err != nil {
			return err
		}
		if w.Counts, err = create2dArray(w.HistogramGroup, "counts", nBins); err != nil {
			return err
		}
		if w.Errors, err = create2dArray(w.HistogramGroup, "errors", nBins); err != nil {
			return err
		}
	}

	for i := range counts {
		if len(counts[i]) != nBins || len(errs[i]) != nBins {
			return fmt.Errorf("spectrum %d has %d bins, expected %d", i, len(counts[i]), nBins)
		}
		if err := write2dArray(w.Counts, "counts", &counts[i], w.SpectrumCounter, nBins); err != nil {
			return err
		}
		if err := write2dArray(w.Errors, "errors", &errs[i], w.SpectrumCounter, nBins); err != nil {
			return err
		}
		w.SpectrumCounter++
	}
	return nil
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "writer")
	}
	var errs []error

	datasets := []struct {
		name    string
		dataset *hdf5.Dataset
	}{
		{"run info table", w.RunInfoTable},
		{"splitter table", w.SplitterTable},
		{"detector table", w.DetectorTable},
		{"event table", w.EventTable},
		{"bin edges", w.BinEdges},
		{"counts", w.Counts},
		{"errors", w.Errors},
	}
	for _, d := range datasets {
		if d.dataset == nil {
			continue
		}
		if err := d.dataset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", d.name, err))
		}
	}

	groups := []struct {
		name  string
		group *hdf5.Group
	}{
		{"run group", w.RunGroup},
		{"spectra group", w.SpectraGroup},
		{"events group", w.EventsGroup},
		{"histogram group", w.HistogramGroup},
	}
	for _, g := range groups {
		if g.group == nil {
			continue
		}
		if err := g.group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", g.name, err))
		}
	}

	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// WriteWorkspace writes everything the configuration asks for.
func (w *Writer) WriteWorkspace(ws *Workspace, runNumber int, counts [][]float64, errs [][]float64) error {
	if err := w.WriteRunInfo(runNumber, ws.NumberOfEvents()); err != nil {
		return err
	}
	if configuration.WriteEvents {
		if err := w.WriteEvents(ws); err != nil {
			return err
		}
	}
	if configuration.WriteHistograms && ws.NumberOfSpectra() > 0 {
		edges := ws.EventList(0).DataX()
		if err := w.WriteHistograms(edges, counts, errs); err != nil {
			return err
		}
	}
	return nil
}
