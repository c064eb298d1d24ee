package eventlist

import (
	"encoding/json"
	"fmt"
	"os"
)

// TofRange is a [min, max] pair, written as a two-element JSON array.
type TofRange [2]float64

func (r TofRange) Min() float64 { return r[0] }
func (r TofRange) Max() float64 { return r[1] }

type Configuration struct {
	Verbosity        int           `json:"verbosity"`
	FileIn           string        `json:"file_in"`
	FileOut          string        `json:"file_out"`
	MaxEvents        int           `json:"max_events"`
	Skip             int           `json:"skip"`
	NoDB             bool          `json:"no_db"`
	Host             string        `json:"host"`
	User             string        `json:"user"`
	Passwd           string        `json:"pass"`
	DBName           string        `json:"dbname"`
	RunNumber        int           `json:"run_number"`
	NumWorkers       int           `json:"num_workers"`
	WriteEvents      bool          `json:"write_events"`
	WriteHistograms  bool          `json:"write_histograms"`
	CompressionLevel int           `json:"compression_level"`
	TofFactor        float64       `json:"tof_factor"`
	TofOffset        float64       `json:"tof_offset"`
	XMin             float64       `json:"x_min"`
	XMax             float64       `json:"x_max"`
	BinWidth         float64       `json:"bin_width"`
	MaskRanges       []TofRange    `json:"mask_ranges"`
	Split            bool          `json:"split"`
	Splitters        TimeSplitter  `json:"splitters"`
	SortOrder        EventSortType `json:"sort_order"`
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func DefaultConfiguration() Configuration {
	return Configuration{
		MaxEvents:        1000000000,
		Verbosity:        0,
		Skip:             0,
		NoDB:             false,
		Host:             "next.ific.uv.es",
		User:             "nextreader",
		Passwd:           "readonly",
		DBName:           "NEXT100",
		NumWorkers:       1,
		WriteEvents:      true,
		WriteHistograms:  true,
		CompressionLevel: 4,
		TofFactor:        1,
		TofOffset:        0,
		XMin:             0,
		XMax:             100000,
		BinWidth:         100,
		SortOrder:        TofSort,
	}
}

// LoadConfiguration reads a JSON file on top of the default configuration.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	for _, r := range config.MaskRanges {
		if r.Max() <= r.Min() {
			return config, fmt.Errorf("mask range: %w", &InvalidRangeError{Min: r.Min(), Max: r.Max()})
		}
	}
	return config, nil
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Write events: %t", config.WriteEvents), "config")
	logger.Info(fmt.Sprintf("Write histograms: %t", config.WriteHistograms), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("TOF factor: %g", config.TofFactor), "config")
	logger.Info(fmt.Sprintf("TOF offset: %g", config.TofOffset), "config")
	logger.Info(fmt.Sprintf("Binning: [%g, %g) width %g", config.XMin, config.XMax, config.BinWidth), "config")
	logger.Info(fmt.Sprintf("Mask ranges: %v", config.MaskRanges), "config")
	logger.Info(fmt.Sprintf("Split: %t", config.Split), "config")
	logger.Info(fmt.Sprintf("Inline splitters: %d", len(config.Splitters)), "config")
	logger.Info(fmt.Sprintf("Sort order: %s", config.SortOrder), "config")
}
