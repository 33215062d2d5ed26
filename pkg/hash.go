package dirsum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sys/unix"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	Size    int
	NewFunc func() hash.Hash
}

var hashAlgorithms = map[string]*HashAlgorithm{
	AlgorithmMD5: {
		Name:    AlgorithmMD5,
		Size:    HashSizeMD5,
		NewFunc: md5.New,
	},
	AlgorithmSHA1: {
		Name:    AlgorithmSHA1,
		Size:    HashSizeSHA1,
		NewFunc: sha1.New,
	},
	AlgorithmSHA256: {
		Name:    AlgorithmSHA256,
		Size:    HashSizeSHA256,
		NewFunc: sha256.New,
	},
	AlgorithmSHA512: {
		Name:    AlgorithmSHA512,
		Size:    HashSizeSHA512,
		NewFunc: sha512.New,
	},
	AlgorithmXXH3: {
		Name:    AlgorithmXXH3,
		Size:    HashSizeXXH3,
		NewFunc: func() hash.Hash { return xxh3.New() },
	},
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	algorithm, ok := hashAlgorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedAlgorithm, name,
			strings.Join(SupportedAlgorithms(), ", "))
	}
	return algorithm, nil
}

// SupportedAlgorithms returns the sorted names of all known algorithms
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(hashAlgorithms))
	for name := range hashAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(name string) error {
	_, err := GetHashAlgorithm(name)
	return err
}

// Digest accumulates the contents of many readers into a single running hash.
// Reads happen in bufferSize chunks and the shutdown channel is checked between them.
type Digest struct {
	algorithm *HashAlgorithm
	hasher    hash.Hash
	buffer    []byte
	shutdown  <-chan struct{}
	written   int64
}

// NewDigest creates a digest accumulator. A nil shutdown channel never fires.
func NewDigest(algorithm *HashAlgorithm, bufferSize int, shutdown <-chan struct{}) *Digest {
	if bufferSize <= 0 {
		bufferSize = 2 * 1024 * 1024
	}
	return &Digest{
		algorithm: algorithm,
		hasher:    algorithm.NewFunc(),
		buffer:    make([]byte, bufferSize),
		shutdown:  shutdown,
	}
}

// fder is implemented by files backed by an OS descriptor
type fder interface {
	Fd() uintptr
}

// Feed streams r into the running hash. name is only used in error messages.
func (d *Digest) Feed(name string, r io.Reader) error {
	if f, ok := r.(fder); ok {
		// Advisory only; a failure here never affects the result.
		_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	}

	for {
		select {
		case <-d.shutdown:
			return fmt.Errorf("hashing %s: %w", name, ErrInterrupted)
		default:
		}

		n, err := r.Read(d.buffer)
		if n > 0 {
			d.hasher.Write(d.buffer[:n])
			d.written += int64(n)
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: failed to read %s: %w", ErrPathUnreadable, name, err)
		}
	}
}

// Written returns the total number of bytes fed so far
func (d *Digest) Written() int64 {
	return d.written
}

// Sum returns the raw digest bytes, failing if the hasher produced a digest
// of a different size than the algorithm declares
func (d *Digest) Sum() ([]byte, error) {
	sum := d.hasher.Sum(nil)
	if len(sum) != d.algorithm.Size {
		return nil, fmt.Errorf("%s digest is %d bytes, expected %d", d.algorithm.Name, len(sum), d.algorithm.Size)
	}
	return sum, nil
}

// HexSum returns the digest as lowercase hexadecimal
func (d *Digest) HexSum() (string, error) {
	sum, err := d.Sum()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// HashStringToHexString calculates the hash of a string and returns it as a hex string
func HashStringToHexString(data string, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	io.WriteString(hasher, data)
	return hex.EncodeToString(hasher.Sum(nil))
}
