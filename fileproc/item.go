// Package fileproc runs caller-selected per-file transformations over every
// regular file in a directory, using a bounded worker pool. Directory
// enumeration, the transformations, and result presentation are deliberately
// separate pieces: Enumerate produces ordered work items, a Processor turns
// one item into a Result, and Engine.Run wires them through pool.RunBatch.
package fileproc

import (
	"os"
	"path/filepath"
)

// Item identifies one file in a batch. Index is the position assigned by the
// enumerator; Path points at the file to process. Items are immutable once
// created.
type Item struct {
	Index int
	Path  string
}

// Result carries what a processor extracted from one file. Only the fields
// the selected processor computes are set.
type Result struct {
	Path     string
	Bytes    int64
	Lines    int
	Words    int
	Checksum string
}

// Enumerate lists the regular files directly under dir, in lexical filename
// order, and wraps them as work items. Entries that are not plain files
// (directories, symlinks, sockets) are skipped. The ordering is stable, so
// repeated runs over the same directory submit the same sequence.
func Enumerate(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		items = append(items, Item{
			Index: len(items),
			Path:  filepath.Join(dir, entry.Name()),
		})
	}
	return items, nil
}
