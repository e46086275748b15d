// If you are AI: This file loads decoder input from files or stdin.
// Compressed inputs are detected by magic number and expanded before decoding.

package source

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// StdinName selects standard input instead of a file.
const StdinName = "-"

var (
	// ErrTooLarge is returned when the (decompressed) input exceeds the size limit.
	ErrTooLarge = errors.New("input exceeds size limit")
	// ErrEmptyName is returned when no input path is given.
	ErrEmptyName = errors.New("input name is empty")
)

// Compression identifies the container the raw input was wrapped in.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// Magic numbers of the supported containers.
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// String returns the container name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Digest is the BLAKE3 hash of the decoded bytes.
type Digest [32]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Input is a fully loaded buffer ready for decoding.
type Input struct {
	Name        string
	Data        []byte
	RawSize     int
	Compression Compression
	Digest      Digest
}

// Load reads the named file, or stdin for "-".
// maxSize bounds the decompressed size; 0 disables the limit.
func Load(name string, maxSize int64) (*Input, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if name == StdinName {
		return Read(os.Stdin, "stdin", maxSize)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f, name, maxSize)
}

// Read loads r completely, expanding any recognised compression.
func Read(r io.Reader, name string, maxSize int64) (*Input, error) {
	raw, err := readLimited(r, maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	c := Detect(raw)
	data, err := Decompress(raw, c, maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Input{
		Name:        name,
		Data:        data,
		RawSize:     len(raw),
		Compression: c,
		Digest:      Sum(data),
	}, nil
}

// Detect identifies the container from the leading bytes.
func Detect(b []byte) Compression {
	switch {
	case bytes.HasPrefix(b, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(b, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(b, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress expands raw according to c.
func Decompress(raw []byte, c Compression, maxSize int64) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return readLimited(zr, maxSize)
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return readLimited(zr, maxSize)
	case CompressionLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(raw)), maxSize)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

// Sum returns the BLAKE3 digest of data.
func Sum(data []byte) Digest {
	return blake3.Sum256(data)
}

// readLimited reads r to the end, failing once more than maxSize bytes arrive.
func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxSize)
	}
	return b, nil
}
