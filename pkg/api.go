package dirsum

import (
	"fmt"
	"io"

	"golang.org/x/mod/sumdb/dirhash"
)

// Files returns the relative paths of all regular files in lexicographic order
func (t *Tree) Files() ([]string, error) {
	set, err := t.walk()
	if err != nil {
		return nil, err
	}
	return set.Paths(), nil
}

// List writes every relative file path to w, one per line. Nothing is written
// if the walk fails.
func (t *Tree) List(w io.Writer) error {
	defer VerboseEnter()()

	paths, err := t.Files()
	if err != nil {
		return err
	}
	return writeLines(w, paths)
}

// Checksum hashes the concatenated contents of all files, in sorted path
// order, and returns the lowercase hex digest
func (t *Tree) Checksum(algorithmName string) (string, error) {
	defer VerboseEnter()()

	algorithm, err := GetHashAlgorithm(algorithmName)
	if err != nil {
		return "", err
	}

	set, err := t.walk()
	if err != nil {
		return "", err
	}

	digest := NewDigest(algorithm, t.bufferSize, t.shutdown)
	var feedErr error
	set.ForEach(func(entry *fileEntry) bool {
		feedErr = t.feedFile(digest, entry.RelPath)
		return feedErr == nil
	})
	if feedErr != nil {
		return "", feedErr
	}

	sum, err := digest.HexSum()
	if err != nil {
		return "", err
	}

	VerboseLog(1, "%s over %d files (%d bytes)", algorithm.Name, set.Len(), digest.Written())
	return sum, nil
}

// PrintChecksum writes the hex digest for algorithmName to w as a single line
func (t *Tree) PrintChecksum(w io.Writer, algorithmName string) error {
	sum, err := t.Checksum(algorithmName)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, sum)
	return err
}

// MD5 writes the MD5 digest of the tree to w
func (t *Tree) MD5(w io.Writer) error {
	return t.PrintChecksum(w, AlgorithmMD5)
}

// Hash1 returns the Go module "h1:" hash of the tree's files
func (t *Tree) Hash1() (string, error) {
	defer VerboseEnter()()

	set, err := t.walk()
	if err != nil {
		return "", err
	}

	open := func(name string) (io.ReadCloser, error) {
		file, err := t.fs.Open(name)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open %s: %w", ErrPathUnreadable, name, err)
		}
		return file, nil
	}

	sum, err := dirhash.Hash1(set.Paths(), open)
	if err != nil {
		return "", fmt.Errorf("h1 hash: %w", err)
	}
	return sum, nil
}

// List writes the files under the current directory to w
func List(w io.Writer) error {
	tree, err := NewTree(".")
	if err != nil {
		return err
	}
	return tree.List(w)
}

// MD5 writes the MD5 digest of the current directory to w
func MD5(w io.Writer) error {
	tree, err := NewTree(".")
	if err != nil {
		return err
	}
	return tree.MD5(w)
}
