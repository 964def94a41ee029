// Package snapshot persists generated networks so they can be isolated again
// later with the same input.
//
// A snapshot is a versioned envelope around a network, encoded as JSON or
// YAML. Compressed snapshots wrap the encoded envelope in a snappy block
// behind a short header carrying a magic number and a CRC32 of the block.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// Version is the envelope version written by Encode
const Version = 1

// Format is a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Snapshot is the persisted envelope
type Snapshot struct {
	Version   int              `json:"version" yaml:"version"`
	CreatedAt time.Time        `json:"createdAt" yaml:"createdAt"`
	Counts    network.Counts   `json:"counts" yaml:"counts"`
	Network   *network.Network `json:"network" yaml:"network"`
}

// Options controls how a snapshot is written
type Options struct {
	Format   Format
	Compress bool
}

// compressed header: [magic:4][crc32:4]
var magic = [4]byte{'I', 'S', 'Z', '1'}

const headerLen = 8

// Encode writes n to w
func Encode(w io.Writer, n *network.Network, opts Options) error {
	if n == nil {
		return network.ErrNilNetwork
	}

	snap := Snapshot{
		Version:   Version,
		CreatedAt: time.Now().UTC(),
		Counts:    n.Counts(),
		Network:   n,
	}

	data, err := marshal(snap, opts.Format)
	if err != nil {
		return err
	}

	if opts.Compress {
		block := snappy.Encode(nil, data)
		header := make([]byte, headerLen)
		copy(header, magic[:])
		binary.BigEndian.PutUint32(header[4:], crc32.ChecksumIEEE(block))
		data = append(header, block...)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot in the given format from r and validates the
// network it holds. Compression is detected from the header.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if bytes.HasPrefix(data, magic[:]) {
		if data, err = decompress(data); err != nil {
			return nil, err
		}
	}

	snap, err := unmarshal(data, format)
	if err != nil {
		return nil, err
	}

	if snap.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	if err := network.Validate(snap.Network); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
	}
	return snap, nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) < headerLen {
		return nil, ErrCorrupted
	}
	block := data[headerLen:]
	if binary.BigEndian.Uint32(data[4:headerLen]) != crc32.ChecksumIEEE(block) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}
	out, err := snappy.Decode(nil, block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	return out, nil
}

func marshal(snap Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func unmarshal(data []byte, format Format) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, snap)
	case FormatYAML:
		err = yaml.Unmarshal(data, snap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	return snap, nil
}
