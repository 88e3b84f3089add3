package store

import (
	"sort"
	"sync"

	"github.com/ssargent/portbin/pkg/codec"
	"go.uber.org/zap"
)

// IDIndex maps record ids to the positions of the records carrying them in a
// record file. An id may appear more than once; positions are kept in file order.
type IDIndex struct {
	entries map[int32][]int64
	mutex   sync.RWMutex
}

// NewIDIndex creates an empty id index
func NewIDIndex() *IDIndex {
	return &IDIndex{
		entries: make(map[int32][]int64),
	}
}

// Add records that the record at index carries id
func (idx *IDIndex) Add(id int32, index int64) {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	idx.entries[id] = append(idx.entries[id], index)
}

// Lookup returns every record index carrying id, in file order
func (idx *IDIndex) Lookup(id int32) []int64 {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	positions := idx.entries[id]
	out := make([]int64, len(positions))
	copy(out, positions)
	return out
}

// Latest returns the index of the last record carrying id
func (idx *IDIndex) Latest(id int32) (int64, bool) {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	positions, ok := idx.entries[id]
	if !ok {
		return 0, false
	}
	return positions[len(positions)-1], true
}

// Size returns the number of distinct ids in the index
func (idx *IDIndex) Size() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	return len(idx.entries)
}

// IDs returns the distinct ids in ascending order
func (idx *IDIndex) IDs() []int32 {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	ids := make([]int32, 0, len(idx.entries))
	for id := range idx.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear removes all entries from the index
func (idx *IDIndex) Clear() {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	idx.entries = make(map[int32][]int64)
}

// BuildFromLog rescans the file behind reader from the first record and
// replaces the index contents. A partial trailing record stops the scan with
// its truncation error; the complete records before it stay indexed.
func (idx *IDIndex) BuildFromLog(reader *LogReader) error {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	idx.entries = make(map[int32][]int64)

	if err := reader.Seek(0); err != nil {
		return err
	}

	iterator := reader.Iterator()
	defer iterator.Close()

	var n int64
	for iterator.Next() {
		record := iterator.Record()
		idx.entries[record.ID] = append(idx.entries[record.ID], reader.Offset()/codec.RecordSize-1)
		n++
	}

	Logger().Debug("built id index",
		zap.String("path", reader.config.FilePath),
		zap.Int64("records", n),
		zap.Int("ids", len(idx.entries)))

	return iterator.Err()
}
