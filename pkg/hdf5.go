package eventlist

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type EventHDF5 struct {
	spectrum   int32
	tof        float64
	pulse_time int64
}

type DetectorHDF5 struct {
	spectrum    int32
	detector_id int32
}

type RunInfoHDF5 struct {
	run_number int32
	n_events   int64
}

type SplitterHDF5 struct {
	start       int64
	stop        int64
	destination int32
}

const tableChunk = 32768

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func newChunkedPropList(chunks []uint) (*hdf5.PropList, error) {
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, err
	}
	if err := plist.SetChunk(chunks); err != nil {
		plist.Close()
		return nil, err
	}
	if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
		plist.Close()
		return nil, err
	}
	return plist, nil
}

// create2dArray creates a float64 dataset with an unlimited number of rows
// of nCols values.
func create2dArray(group *hdf5.Group, name string, nCols int) (*hdf5.Dataset, error) {
	dims := []uint{0, uint(nCols)}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), uint(nCols)}
	chunks := []uint{1, tableChunk}
	if nCols < tableChunk {
		chunks[1] = uint(max(nCols, 1))
	}
	return createArray(group, name, dims, maxDims, chunks)
}

func create1dArray(group *hdf5.Group, name string, length int) (*hdf5.Dataset, error) {
	dims := []uint{uint(length)}
	chunks := []uint{uint(max(min(length, tableChunk), 1))}
	return createArray(group, name, dims, dims, chunks)
}

func createArray(group *hdf5.Group, name string, dims []uint, maxDims []uint, chunks []uint) (*hdf5.Dataset, error) {
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := newChunkedPropList(chunks)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := newChunkedPropList([]uint{tableChunk})
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first offset rows of a table.
func writeArrayToTable[T any](dataset *hdf5.Dataset, name string, data *[]T, offset int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(offset)
	if err := dataset.Resize([]uint{rowsInFile + length}); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	return nil
}

// write2dArray writes one row of nCols values at index row, growing the
// dataset as needed.
func write2dArray(dataset *hdf5.Dataset, name string, data *[]float64, row int, nCols int) error {
	if err := dataset.Resize([]uint{uint(row) + 1, uint(nCols)}); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(row), 0}
	count := []uint{1, uint(nCols)}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	defer dataspace.Close()

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: err}
	}
	return nil
}

func write1dArray(dataset *hdf5.Dataset, name string, data *[]float64) error {
	if err := dataset.Write(data); err != nil {
		return &ErrWriteDataset{DatasetName: name, Err: fmt.Errorf("writing %d values: %w", len(*data), err)}
	}
	return nil
}
