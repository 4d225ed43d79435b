package fileproc

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/utkarsh5026/filebatch/pool"
)

// Processor is the per-file transformation run inside the worker pool.
// Every processor opens its file itself and releases it on all exit paths,
// so a failing item never leaks a descriptor.
type Processor = pool.ProcessFunc[Item, Result]

// maxLineSize bounds scanner growth for files with very long lines.
const maxLineSize = 1024 * 1024

// LineCount counts lines and bytes.
func LineCount(ctx context.Context, item Item) (Result, error) {
	return scanFile(ctx, item, false)
}

// WordCount counts lines, words, and bytes.
func WordCount(ctx context.Context, item Item) (Result, error) {
	return scanFile(ctx, item, true)
}

// Checksum computes the hex-encoded SHA-256 digest of the file.
func Checksum(ctx context.Context, item Item) (Result, error) {
	f, err := os.Open(item.Path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", item.Path, err)
	}

	return Result{
		Path:     item.Path,
		Bytes:    n,
		Checksum: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func scanFile(ctx context.Context, item Item, words bool) (Result, error) {
	f, err := os.Open(item.Path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer f.Close()

	res := Result{Path: item.Path}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		res.Lines++
		if words {
			res.Words += len(strings.Fields(scanner.Text()))
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read %s: %w", item.Path, err)
	}

	if info, err := f.Stat(); err == nil {
		res.Bytes = info.Size()
	}
	return res, nil
}

// ByName resolves a processor by its configuration name.
func ByName(name string) (Processor, error) {
	switch name {
	case "lines":
		return LineCount, nil
	case "words":
		return WordCount, nil
	case "checksum":
		return Checksum, nil
	default:
		return nil, fmt.Errorf("unknown processor %q (have: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the available processor names.
func Names() []string {
	return []string{"lines", "words", "checksum"}
}
