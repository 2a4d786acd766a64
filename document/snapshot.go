package document

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// Compression selects how a snapshot payload is packed. The values are
// stored in the snapshot header.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses the name printed by Compression.String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("document: unknown compression %q", name)
	}
}

// MaxSnapshotSize bounds the uncompressed payload of a snapshot.
const MaxSnapshotSize = 64 << 20

var (
	ErrCorruptSnapshot = errors.New("document: corrupt snapshot")

	errIncompressible = errors.New("payload is incompressible")
)

// snapshotMagic opens every snapshot. The layout that follows is
//
//	compression tag (1 byte) | payload size (uvarint) | digest (32 bytes) | payload
//
// where the payload is the CBOR form of the tree and the digest is its
// BLAKE3 hash before compression.
var snapshotMagic = []byte("cbs1")

// Digest is the BLAKE3 hash of the CBOR form of a tree. Equal trees have
// equal digests.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// DigestOf hashes the deterministic CBOR encoding of n.
func DigestOf(n *Node) (Digest, error) {
	payload, err := EncodeCBOR(n)
	if err != nil {
		return Digest{}, err
	}

	return blake3.Sum256(payload), nil
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("document: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSnapshotSize))
	if err != nil {
		panic("document: zstd decoder initialization failed: " + err.Error())
	}
}

// EncodeSnapshot packs the tree into a compressed, self-checking snapshot.
// Payloads that do not shrink are stored uncompressed whatever c says.
func EncodeSnapshot(n *Node, c Compression) ([]byte, error) {
	payload, err := EncodeCBOR(n)
	if err != nil {
		return nil, err
	}

	if len(payload) > MaxSnapshotSize {
		return nil, fmt.Errorf("document: snapshot payload of %d bytes exceeds %d", len(payload), MaxSnapshotSize)
	}

	packed, err := compress(payload, c)
	switch {
	case errors.Is(err, errIncompressible):
		c, packed = CompressionNone, payload
	case err != nil:
		return nil, err
	}

	digest := blake3.Sum256(payload)

	out := make([]byte, 0, len(snapshotMagic)+1+binary.MaxVarintLen64+len(digest)+len(packed))
	out = append(out, snapshotMagic...)
	out = append(out, byte(c))
	out = binary.AppendUvarint(out, uint64(len(payload)))
	out = append(out, digest[:]...)

	return append(out, packed...), nil
}

// ParseSnapshot unpacks a snapshot produced by EncodeSnapshot and verifies
// its digest.
func ParseSnapshot(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	rest, ok := bytes.CutPrefix(data, snapshotMagic)
	if !ok || len(rest) < 1 {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptSnapshot)
	}

	c := Compression(rest[0])
	rest = rest[1:]

	size, n := binary.Uvarint(rest)
	if n <= 0 || size > MaxSnapshotSize {
		return nil, fmt.Errorf("%w: bad payload size", ErrCorruptSnapshot)
	}
	rest = rest[n:]

	var digest Digest
	if len(rest) < len(digest) {
		return nil, fmt.Errorf("%w: truncated digest", ErrCorruptSnapshot)
	}
	copy(digest[:], rest)
	rest = rest[len(digest):]

	payload, err := decompress(rest, c, int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if blake3.Sum256(payload) != digest {
		return nil, fmt.Errorf("%w: digest mismatch", ErrCorruptSnapshot)
	}

	return ParseCBOR(payload)
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// zero means lz4 found nothing to compress
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return dst[:written], nil

	case CompressionZstd:
		out := zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return nil, errIncompressible
		}
		return out, nil

	default:
		return nil, fmt.Errorf("document: unsupported compression %v", c)
	}
}

func decompress(data []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(data) != size {
			return nil, fmt.Errorf("stored payload has %d bytes, want %d", len(data), size)
		}
		return data, nil

	case CompressionLZ4:
		dst := make([]byte, size)
		read, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, want %d", read, size)
		}
		return dst, nil

	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, want %d", len(out), size)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown compression %v", c)
	}
}
