package cmd

import (
	"bufio"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// sourceFiles reads a set of input files followed by stdin.
type sourceFiles struct {
	read  []io.Reader
	stdin io.Reader
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// buildSourceFiles opens the given source paths.
//
// Files are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single read of stdin,
// placed last so it reads after all regular files. Files that cannot be
// opened are returned as missing.
func buildSourceFiles(
	sources []string,
	stdin io.Reader,
) (src *sourceFiles, missing []string) {
	src = &sourceFiles{read: make([]io.Reader, 0, len(sources))}
	seen := make(map[fileKey]struct{})

	for _, path := range sources {
		if path == stdinSource {
			src.stdin = stdin

			continue
		}

		reader, err := openUniqueFile(path, seen)
		if err != nil {
			missing = append(missing, path)

			continue
		}

		if reader != nil {
			src.read = append(src.read, reader)
		}
	}

	return src, missing
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// A duplicate yields a nil reader and nil error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// Lines returns an iterator over the non-blank lines of every source in
// order, with trailing carriage returns removed. Iteration stops at the first
// read error.
func (s *sourceFiles) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		defer s.Close()

		readers := s.read
		if s.stdin != nil {
			readers = append(readers[:len(readers):len(readers)], s.stdin)
		}

		scanner := bufio.NewScanner(io.MultiReader(readers...))
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

		for scanner.Scan() {
			line := strings.TrimSuffix(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}

			if !yield(line, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var first error

	for _, r := range s.read {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}

	s.read = nil

	return first
}
