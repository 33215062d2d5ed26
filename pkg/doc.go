// Package dirsum lists the regular files under a directory and computes a
// single digest over their combined contents.
//
// # Core API
//
// The main entry point is Tree, which wraps a directory on disk (or any
// go-billy filesystem):
//
//	tree, err := dirsum.NewTree(".")
//	if err != nil {
//		return err
//	}
//
// # Listing
//
// List writes relative paths, one per line, in byte-wise lexicographic order:
//
//	err := tree.List(os.Stdout)
//
// # Hashing
//
// Checksum feeds every file, in the same order, into one running digest:
//
//	sum, err := tree.Checksum("md5")
//
// Supported algorithms are md5, sha1, sha256, sha512 and xxh3. Hash1 returns
// the Go module "h1:" directory hash of the same file set.
//
// # Errors
//
// Unreadable directories or files abort the operation with an error wrapping
// ErrPathUnreadable; unknown algorithm names wrap ErrUnsupportedAlgorithm.
// Symbolic links are neither followed nor listed.
//
// # Configuration
//
//	dirsum.SetDebugFlags("walk,hash")
//	dirsum.SetVerboseLevel(2)
package dirsum
