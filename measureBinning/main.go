package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	eventlist "github.com/next-exp/eventlist_go/pkg"
)

var configuration eventlist.Configuration
var logger eventlist.SlogLogger

func init() {
	logger = eventlist.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	repetitions := flag.Int("repetitions", 3, "Runs per compression level")
	flag.Parse()

	var err error
	configuration, err = eventlist.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	eventlist.SetConfiguration(configuration)
	eventlist.SetLogger(logger)

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	ws := eventlist.NewWorkspace(0)
	reader := eventlist.NewEventReader(file)
	nEvents, err := reader.ReadInto(ws, configuration.Skip, configuration.MaxEvents)
	file.Close()
	if err != nil {
		logger.Error(fmt.Sprintf("Error reading events: %v", err))
		os.Exit(1)
	}
	runNumber := int(reader.Header.RunNumber)
	fmt.Println("Total events read: ", nEvents)

	ctx := context.Background()
	for _, factor := range []float64{4, 2, 1, 0.5, 0.25} {
		width := configuration.BinWidth * factor
		nBins, elapsed, err := timeBinning(ctx, ws, width)
		if err != nil {
			logger.Error(err.Error())
			continue
		}
		fmt.Printf("(width %g, %d bins) Histogram time: %d ms\n", width, nBins, elapsed.Milliseconds())
	}

	edges, err := eventlist.LinearBinEdges(configuration.XMin, configuration.XMax, configuration.BinWidth)
	if err != nil {
		logger.Error(fmt.Sprintf("Error building bin edges: %v", err))
		os.Exit(1)
	}
	ws.SetAllX(edges)
	counts, errs, err := ws.HistogramAll(ctx, configuration.NumWorkers)
	if err != nil {
		logger.Error(fmt.Sprintf("Error histogramming: %v", err))
		os.Exit(1)
	}

	for compressionLevel := 0; compressionLevel < 10; compressionLevel++ {
		for i := 0; i < *repetitions; i++ {
			configuration.CompressionLevel = compressionLevel
			eventlist.SetConfiguration(configuration)
			start := time.Now()
			if err := writeFile(ws, runNumber, counts, errs); err != nil {
				logger.Error(err.Error())
				continue
			}
			duration := time.Since(start)
			fileInfo, err := os.Stat(configuration.FileOut)
			if err != nil {
				logger.Error(fmt.Sprintf("Error getting file info: %v", err))
				continue
			}
			fmt.Printf("(hdf5, comp %d) Time: %d ms, size %d bytes\n", compressionLevel, duration.Milliseconds(), fileInfo.Size())
		}
	}
}

// timeBinning rebins ws with constant width bins and times HistogramAll.
func timeBinning(ctx context.Context, ws *eventlist.Workspace, width float64) (int, time.Duration, error) {
	edges, err := eventlist.LinearBinEdges(configuration.XMin, configuration.XMax, width)
	if err != nil {
		return 0, 0, fmt.Errorf("Error building bin edges: %w", err)
	}
	ws.SetAllX(edges)
	nBins := edges.HistogramSize()
	edges.Release()

	start := time.Now()
	if _, _, err := ws.HistogramAll(ctx, configuration.NumWorkers); err != nil {
		return nBins, 0, fmt.Errorf("Error histogramming: %w", err)
	}
	return nBins, time.Since(start), nil
}

func writeFile(ws *eventlist.Workspace, runNumber int, counts, errs [][]float64) error {
	writer, err := eventlist.NewWriter(configuration.FileOut)
	if err != nil {
		return err
	}
	if err := writer.WriteWorkspace(ws, runNumber, counts, errs); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
