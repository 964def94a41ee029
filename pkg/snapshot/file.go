package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// CompressedExt marks a snappy-compressed snapshot file
const CompressedExt = ".sz"

// OptionsForPath derives the format and compression from a file name such
// as net.json, net.yaml or net.json.sz.
func OptionsForPath(path string) (Options, error) {
	name := strings.ToLower(filepath.Base(path))
	opts := Options{}
	if strings.HasSuffix(name, CompressedExt) {
		opts.Compress = true
		name = strings.TrimSuffix(name, CompressedExt)
	}

	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	if err != nil {
		return Options{}, err
	}
	opts.Format = format
	return opts, nil
}

// Save writes n to path, choosing the encoding from the file name
func Save(path string, n *network.Network) error {
	opts, err := OptionsForPath(path)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	if err := Encode(f, n, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load reads and validates the network stored at path
func Load(path string) (*network.Network, error) {
	opts, err := OptionsForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap.Network, nil
}
