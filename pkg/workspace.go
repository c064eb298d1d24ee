package eventlist

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Workspace is an ordered set of event lists, one per spectrum, with an
// index from detector ID to spectrum.
//
// Bulk operations process spectra in parallel; each list is handled by a
// single goroutine, so callers must not use the workspace concurrently with
// a bulk operation.
type Workspace struct {
	spectra    []*EventList
	byDetector map[int32]int
}

func NewWorkspace(nSpectra int) *Workspace {
	ws := &Workspace{
		spectra:    make([]*EventList, nSpectra),
		byDetector: make(map[int32]int),
	}
	for i := range ws.spectra {
		ws.spectra[i] = NewEventList()
	}
	return ws
}

// NewWorkspaceFromMapping creates one spectrum per distinct index of the
// detector → spectrum mapping and registers every detector with it.
func NewWorkspaceFromMapping(mapping map[int32]int) *Workspace {
	nSpectra := 0
	for _, spectrum := range mapping {
		if spectrum+1 > nSpectra {
			nSpectra = spectrum + 1
		}
	}
	ws := NewWorkspace(nSpectra)
	for detectorID, spectrum := range mapping {
		if spectrum < 0 {
			continue
		}
		ws.byDetector[detectorID] = spectrum
		ws.spectra[spectrum].AddDetectorID(detectorID)
	}
	return ws
}

func (ws *Workspace) NumberOfSpectra() int {
	return len(ws.spectra)
}

func (ws *Workspace) EventList(i int) *EventList {
	return ws.spectra[i]
}

func (ws *Workspace) NumberOfEvents() int {
	total := 0
	for _, el := range ws.spectra {
		total += el.NumberOfEvents()
	}
	return total
}

// SpectrumForDetector returns the spectrum a detector's events go to.
func (ws *Workspace) SpectrumForDetector(detectorID int32) (int, bool) {
	spectrum, ok := ws.byDetector[detectorID]
	return spectrum, ok
}

// AddEvent appends an event to the spectrum of detectorID. Unknown detectors
// get a new spectrum of their own.
func (ws *Workspace) AddEvent(detectorID int32, event TofEvent) {
	spectrum, ok := ws.byDetector[detectorID]
	if !ok {
		spectrum = len(ws.spectra)
		ws.spectra = append(ws.spectra, NewEventList())
		ws.spectra[spectrum].AddDetectorID(detectorID)
		ws.byDetector[detectorID] = spectrum
	}
	ws.spectra[spectrum].AddEvent(event)
}

// SetAllX makes every spectrum share edges.
func (ws *Workspace) SetAllX(edges BinEdges) {
	for _, el := range ws.spectra {
		el.SetX(edges)
	}
}

// forEachSpectrum runs fn for every spectrum on at most workers goroutines.
func (ws *Workspace) forEachSpectrum(ctx context.Context, workers int, fn func(i int, el *EventList) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, el := range ws.spectra {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("spectrum %d: recovered from panic: %v", i, r)
				}
			}()
			return fn(i, el)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (ws *Workspace) SortAll(ctx context.Context, workers int, order EventSortType) error {
	return ws.forEachSpectrum(ctx, workers, func(_ int, el *EventList) error {
		el.SortBy(order)
		return nil
	})
}

func (ws *Workspace) ConvertAllTof(ctx context.Context, workers int, factor, offset float64) error {
	return ws.forEachSpectrum(ctx, workers, func(_ int, el *EventList) error {
		el.ConvertTof(factor, offset)
		return nil
	})
}

func (ws *Workspace) MaskAllTofRange(ctx context.Context, workers int, min, max float64) error {
	if max <= min {
		return &InvalidRangeError{Min: min, Max: max}
	}
	return ws.forEachSpectrum(ctx, workers, func(i int, el *EventList) error {
		if err := el.MaskTofRange(min, max); err != nil {
			return fmt.Errorf("spectrum %d: %w", i, err)
		}
		return nil
	})
}

// HistogramAll histograms every spectrum on its own bin edges.
func (ws *Workspace) HistogramAll(ctx context.Context, workers int) ([][]float64, [][]float64, error) {
	counts := make([][]float64, len(ws.spectra))
	errs := make([][]float64, len(ws.spectra))
	err := ws.forEachSpectrum(ctx, workers, func(i int, el *EventList) error {
		counts[i] = el.DataY()
		errs[i] = HistogramErrors(counts[i])
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return counts, errs, nil
}

// FilterByPulseTime returns a workspace holding the events of every spectrum
// with start <= pulse time < stop.
func (ws *Workspace) FilterByPulseTime(ctx context.Context, workers int, start, stop int64) (*Workspace, error) {
	output := ws.emptyCopy()
	err := ws.forEachSpectrum(ctx, workers, func(i int, el *EventList) error {
		el.FilterByPulseTime(start, stop, output.spectra[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// SplitByTime splits every spectrum with splitter and returns one workspace
// per destination index.
func (ws *Workspace) SplitByTime(ctx context.Context, workers int, splitter TimeSplitter) ([]*Workspace, error) {
	outputs := make([]*Workspace, splitter.NumOutputs())
	for i := range outputs {
		outputs[i] = ws.emptyCopy()
	}
	err := ws.forEachSpectrum(ctx, workers, func(i int, el *EventList) error {
		lists := make([]*EventList, len(outputs))
		for j, output := range outputs {
			lists[j] = output.spectra[i]
		}
		el.SplitByTime(splitter, lists)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

// emptyCopy has the same spectra and detector index as ws but no events.
func (ws *Workspace) emptyCopy() *Workspace {
	output := NewWorkspace(len(ws.spectra))
	for detectorID, spectrum := range ws.byDetector {
		output.byDetector[detectorID] = spectrum
	}
	return output
}
