package main

import (
	"fmt"

	eventlist "github.com/next-exp/eventlist_go/pkg"
)

type SpectrumResult struct {
	Index  int
	Counts []float64
	Errors []float64
	Err    error
}

func worker(id int, ws *eventlist.Workspace, jobs <-chan int, results chan<- SpectrumResult) {
	for index := range jobs {
		results <- histogramSpectrum(id, ws.EventList(index), index)
	}
}

func histogramSpectrum(id int, el *eventlist.EventList, index int) (result SpectrumResult) {
	defer func() {
		if r := recover(); r != nil {
			result = SpectrumResult{Index: index, Err: fmt.Errorf("worker %d recovered from panic on spectrum %d: %v", id, index, r)}
		}
	}()

	if VerbosityLevel > 2 {
		message := fmt.Sprintf("Worker %d histogramming spectrum %d (%d events)", id, index, el.NumberOfEvents())
		logger.Info(message, "worker")
	}
	counts, errs := el.Histogram(el.DataX())
	return SpectrumResult{Index: index, Counts: counts, Errors: errs}
}

func sendSpectraToWorkers(nSpectra int, jobs chan<- int) {
	for i := 0; i < nSpectra; i++ {
		jobs <- i
	}
	close(jobs)
}

// processWorkerResults collects one result per spectrum in spectrum order.
func processWorkerResults(results <-chan SpectrumResult, nSpectra int) ([][]float64, [][]float64, error) {
	counts := make([][]float64, nSpectra)
	errs := make([][]float64, nSpectra)
	var firstErr error
	for processed := 0; processed < nSpectra; processed++ {
		result := <-results
		if result.Err != nil {
			logger.Error(result.Err.Error())
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		counts[result.Index] = result.Counts
		errs[result.Index] = result.Errors
	}
	return counts, errs, firstErr
}

// histogramWorkspace runs numWorkers goroutines over the spectra of ws.
func histogramWorkspace(ws *eventlist.Workspace, numWorkers int) ([][]float64, [][]float64, error) {
	nSpectra := ws.NumberOfSpectra()
	jobs := make(chan int, 100)
	results := make(chan SpectrumResult, 100)

	for w := 1; w <= max(numWorkers, 1); w++ {
		go worker(w, ws, jobs, results)
	}
	go sendSpectraToWorkers(nSpectra, jobs)

	return processWorkerResults(results, nSpectra)
}
