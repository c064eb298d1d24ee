package eventlist

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

var detectorMapping map[int32]int
var splitters TimeSplitter

// LoadDatabase reads the detector mapping and the time splitters of a run.
func LoadDatabase(dbConn *sqlx.DB, runNumber int) error {
	var err error
	detectorMapping, err = LoadDetectorMapping(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting detector mapping from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	splitters, err = LoadSplitters(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting splitters from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	return nil
}

// DetectorMapping returns the mapping read by LoadDatabase.
func DetectorMapping() map[int32]int {
	return detectorMapping
}

// Splitters returns the splitters read by LoadDatabase.
func Splitters() TimeSplitter {
	return splitters
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type DetectorMappingEntry struct {
	DetectorID    int32 `db:"DetectorID"`
	SpectrumIndex int   `db:"SpectrumIndex"`
}

// LoadDetectorMapping returns the spectrum of every detector valid for the run.
func LoadDetectorMapping(db *sqlx.DB, runNumber int) (map[int32]int, error) {
	query := "SELECT DetectorID, SpectrumIndex FROM DetectorMapping WHERE MinRun <= ? and MaxRun >= ? ORDER BY SpectrumIndex"

	if configuration.Verbosity > 0 {
		logger.Info("Detector mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	mapping := make(map[int32]int)
	for rows.Next() {
		result := DetectorMappingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		mapping[result.DetectorID] = result.SpectrumIndex
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return mapping, nil
}

// LoadSplitters returns the run's splitting intervals ordered by start time.
func LoadSplitters(db *sqlx.DB, runNumber int) (TimeSplitter, error) {
	query := "SELECT StartTime, StopTime, Destination FROM TimeSplitters WHERE MinRun <= ? and MaxRun >= ? ORDER BY StartTime"

	if configuration.Verbosity > 0 {
		logger.Info("Time splitters read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	splitter := TimeSplitter{}
	err := db.Select(&splitter, query, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	if err := splitter.Validate(); err != nil {
		return nil, err
	}
	return splitter, nil
}
