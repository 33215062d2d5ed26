package dirsum

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// Contexts recorded against each path in the set
const (
	WalkContext = "walk"
)

// fileEntry is a regular file found while walking a tree
type fileEntry struct {
	RelPath string
	Size    int64
}

// pathSet keeps file entries ordered by relative path (byte-wise lexicographic).
type pathSet struct {
	skiplist *zcsl.ZeroCopySkiplist[fileEntry, string, string]
}

// newPathSet creates an empty set
func newPathSet(maxLevels int) *pathSet {
	if maxLevels < 8 {
		maxLevels = 16
	}

	getKeyFromItem := func(entry *fileEntry) string {
		return entry.RelPath
	}

	getItemSize := func(entry *fileEntry) int {
		return len(entry.RelPath)
	}

	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &pathSet{
		skiplist: zcsl.MakeZeroCopySkiplist[fileEntry, string, string](
			maxLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}
}

// Add inserts an entry; it returns false if the path is already present
func (ps *pathSet) Add(entry fileEntry) bool {
	return ps.skiplist.Insert(&entry, WalkContext)
}

// Contains reports whether relPath is in the set
func (ps *pathSet) Contains(relPath string) bool {
	item, _ := ps.skiplist.Find(relPath)
	return item != nil
}

// Len returns the number of entries
func (ps *pathSet) Len() int {
	return ps.skiplist.Length()
}

// ForEach visits entries in sorted order until callback returns false
func (ps *pathSet) ForEach(callback func(*fileEntry) bool) {
	for current := ps.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item()) {
			break
		}
	}
}

// Paths returns the sorted relative paths
func (ps *pathSet) Paths() []string {
	paths := make([]string, 0, ps.Len())
	ps.ForEach(func(entry *fileEntry) bool {
		paths = append(paths, entry.RelPath)
		return true
	})
	return paths
}

// TotalSize returns the sum of the entry sizes recorded at walk time
func (ps *pathSet) TotalSize() int64 {
	var total int64
	ps.ForEach(func(entry *fileEntry) bool {
		total += entry.Size
		return true
	})
	return total
}
