package eventlist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Event files are little-endian: one FileHeader followed by NumEvents
// EventRecord entries.

var EventFileMagic = [4]byte{'E', 'V', 'L', 'S'}

const EventFileVersion = 1

type FileHeader struct {
	Magic     [4]byte
	Version   uint16
	Reserved  uint16
	RunNumber uint32
	NumEvents uint64
}

type EventRecord struct {
	DetectorID int32
	Tof        float64
	PulseTime  int64
}

func (r EventRecord) Event() TofEvent {
	return NewTofEvent(r.Tof, r.PulseTime)
}

type EventReader struct {
	r         io.Reader
	Header    FileHeader
	nRead     uint64
	started   bool
	headerErr error
}

func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{r: r}
}

// ReadHeader reads and checks the file header. NextEvent calls it when it has
// not been called yet. A header error is returned again on every later call.
func (er *EventReader) ReadHeader() (FileHeader, error) {
	if !er.started {
		er.started = true
		er.headerErr = er.readHeader()
	}
	return er.Header, er.headerErr
}

func (er *EventReader) readHeader() error {
	if err := binary.Read(er.r, binary.LittleEndian, &er.Header); err != nil {
		return fmt.Errorf("error reading file header: %w", err)
	}
	if er.Header.Magic != EventFileMagic {
		return fmt.Errorf("not an event file: magic %q", er.Header.Magic[:])
	}
	if er.Header.Version != EventFileVersion {
		return fmt.Errorf("unsupported event file version %d", er.Header.Version)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Run %d, %d events", er.Header.RunNumber, er.Header.NumEvents)
		logger.Info(message, "eventReader")
	}
	return nil
}

// NextEvent returns the next record, or io.EOF after the last one.
func (er *EventReader) NextEvent() (EventRecord, error) {
	var record EventRecord
	if _, err := er.ReadHeader(); err != nil {
		return record, err
	}
	if er.nRead >= er.Header.NumEvents {
		return record, io.EOF
	}
	if err := binary.Read(er.r, binary.LittleEndian, &record); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return record, &ErrReadEvent{Index: er.nRead, Err: err}
	}
	er.nRead++
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Event %d: detector %d tof %g pulse %d",
			er.nRead-1, record.DetectorID, record.Tof, record.PulseTime)
		logger.Info(message, "eventReader")
	}
	return record, nil
}

// ReadInto adds records to ws, skipping the first skip records and stopping
// after maxEvents have been added (no limit when maxEvents <= 0). It returns
// the number of events added.
func (er *EventReader) ReadInto(ws *Workspace, skip int, maxEvents int) (int, error) {
	added := 0
	skipped := 0
	for maxEvents <= 0 || added < maxEvents {
		record, err := er.NextEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			return added, err
		}
		if skipped < skip {
			skipped++
			continue
		}
		ws.AddEvent(record.DetectorID, record.Event())
		added++
	}
	if configuration.Verbosity > 0 && maxEvents > 0 && added == maxEvents {
		logger.Info("Max events reached", "eventReader")
	}
	return added, nil
}

// WriteEventFile writes records in the event file format.
func WriteEventFile(w io.Writer, runNumber uint32, records []EventRecord) error {
	header := FileHeader{
		Magic:     EventFileMagic,
		Version:   EventFileVersion,
		RunNumber: runNumber,
		NumEvents: uint64(len(records)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("error writing file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("error writing events: %w", err)
	}
	return nil
}
