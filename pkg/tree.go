package dirsum

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sys/unix"
)

// walkRoot is the billy path of the tree root
const walkRoot = "."

// Tree is a directory tree whose regular files can be listed and hashed.
// Symbolic links are never followed and never listed.
type Tree struct {
	RootDir    string // Absolute root on disk, empty for in-memory trees
	fs         billy.Filesystem
	bufferSize int
	shutdown   <-chan struct{}

	// checkReadable returns an error when a regular file cannot be read.
	// Only set for trees backed by the OS filesystem.
	checkReadable func(relPath string) error
}

// NewTree creates a tree rooted at rootDir on the OS filesystem
func NewTree(rootDir string) (*Tree, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve root %s: %w", ErrPathUnreadable, rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPathUnreadable, absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathUnreadable, absRoot)
	}

	// osfs bound to a symlinked base rejects the base itself
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve root %s: %w", ErrPathUnreadable, rootDir, err)
	}

	tree := NewTreeFromFilesystem(osfs.New(absRoot, osfs.WithBoundOS()))
	tree.RootDir = absRoot
	tree.checkReadable = func(relPath string) error {
		return unix.Access(filepath.Join(absRoot, filepath.FromSlash(relPath)), unix.R_OK)
	}
	return tree, nil
}

// NewTreeFromFilesystem creates a tree over the root of an existing billy filesystem
func NewTreeFromFilesystem(fs billy.Filesystem) *Tree {
	return &Tree{
		fs:         fs,
		bufferSize: 2 * 1024 * 1024,
	}
}

// SetHashBuffer sets the read buffer size used while hashing
func (t *Tree) SetHashBuffer(size int) {
	if size > 0 {
		t.bufferSize = size
	}
}

// SetShutdownChannel sets a channel that interrupts hashing when closed
func (t *Tree) SetShutdownChannel(shutdown <-chan struct{}) {
	t.shutdown = shutdown
}

// walk collects every regular file under the root. Any unreadable directory,
// entry or file aborts the walk.
func (t *Tree) walk() (*pathSet, error) {
	defer VerboseEnter()()

	set := newPathSet(16)
	err := util.Walk(t.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		relPath := filepath.ToSlash(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPathUnreadable, relPath, err)
		}

		select {
		case <-t.shutdown:
			return fmt.Errorf("walking %s: %w", relPath, ErrInterrupted)
		default:
		}

		if !info.Mode().IsRegular() {
			if info.Mode()&os.ModeSymlink != 0 {
				DebugLog(DebugWalk, "skipping symlink %s", relPath)
			}
			return nil
		}

		if t.checkReadable != nil {
			if err := t.checkReadable(relPath); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrPathUnreadable, relPath, err)
			}
		}

		DebugLog(DebugWalk, "found file %s", relPath)
		set.Add(fileEntry{RelPath: relPath, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	VerboseLog(2, "walk: %d files, %d bytes", set.Len(), set.TotalSize())
	return set, nil
}

// feedFile opens relPath and streams it into digest, closing it on every path
func (t *Tree) feedFile(digest *Digest, relPath string) error {
	file, err := t.fs.Open(relPath)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", ErrPathUnreadable, relPath, err)
	}
	defer file.Close()

	DebugLog(DebugHash, "hashing %s", relPath)
	return digest.Feed(relPath, file)
}
