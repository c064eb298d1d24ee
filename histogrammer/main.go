package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	eventlist "github.com/next-exp/eventlist_go/pkg"
)

var dbConn *sqlx.DB
var configuration eventlist.Configuration

var (
	logger         eventlist.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = eventlist.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
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

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		eventlist.PrintConfiguration(configuration, logger)
	}

	if err := run(context.Background()); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	start := time.Now()

	var mapping map[int32]int
	splitter := configuration.Splitters
	if !configuration.NoDB {
		var err error
		dbConn, err = eventlist.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			return fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()

		if err := eventlist.LoadDatabase(dbConn, configuration.RunNumber); err != nil {
			return err
		}
		mapping = eventlist.DetectorMapping()
		if len(splitter) == 0 {
			splitter = eventlist.Splitters()
		}
	}

	ws, runNumber, err := loadWorkspace(configuration.FileIn, mapping)
	if err != nil {
		return err
	}

	if err := reduce(ctx, ws); err != nil {
		return err
	}

	if err := writeWorkspace(ctx, configuration.FileOut, ws, int(runNumber), nil); err != nil {
		return err
	}

	if configuration.Split {
		if err := splitter.Validate(); err != nil {
			return fmt.Errorf("invalid splitter: %w", err)
		}
		outputs, err := ws.SplitByTime(ctx, configuration.NumWorkers, splitter)
		if err != nil {
			return fmt.Errorf("error splitting events: %w", err)
		}
		for i, output := range outputs {
			filename := splitFilename(configuration.FileOut, i)
			if err := writeWorkspace(ctx, filename, output, int(runNumber), splitter); err != nil {
				return err
			}
		}
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
	return nil
}

// reduce converts, masks and rebins every spectrum.
func reduce(ctx context.Context, ws *eventlist.Workspace) error {
	workers := configuration.NumWorkers
	if configuration.TofFactor != 1 || configuration.TofOffset != 0 {
		if err := ws.ConvertAllTof(ctx, workers, configuration.TofFactor, configuration.TofOffset); err != nil {
			return fmt.Errorf("error converting TOF: %w", err)
		}
	}
	for _, r := range configuration.MaskRanges {
		if err := ws.MaskAllTofRange(ctx, workers, r.Min(), r.Max()); err != nil {
			return fmt.Errorf("error masking TOF range: %w", err)
		}
	}

	edges, err := eventlist.LinearBinEdges(configuration.XMin, configuration.XMax, configuration.BinWidth)
	if err != nil {
		return fmt.Errorf("error building bin edges: %w", err)
	}
	ws.SetAllX(edges)
	edges.Release()
	return nil
}

func writeWorkspace(ctx context.Context, filename string, ws *eventlist.Workspace, runNumber int, splitter eventlist.TimeSplitter) error {
	var counts, errs [][]float64
	if configuration.WriteHistograms {
		var err error
		counts, errs, err = histogramWorkspace(ws, configuration.NumWorkers)
		if err != nil {
			return err
		}
	}
	if err := ws.SortAll(ctx, configuration.NumWorkers, configuration.SortOrder); err != nil {
		return err
	}

	writer, err := eventlist.NewWriter(filename)
	if err != nil {
		return err
	}
	if err := writer.WriteWorkspace(ws, runNumber, counts, errs); err != nil {
		writer.Close()
		return err
	}
	if len(splitter) > 0 {
		if err := writer.WriteSplitter(splitter); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}

// splitFilename turns out.h5 into out_<index>.h5.
func splitFilename(filename string, index int) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	if ext == "" {
		ext = ".h5"
	}
	return fmt.Sprintf("%s_%d%s", stem, index, ext)
}
