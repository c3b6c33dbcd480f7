package cartridge

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// ReadROMFile loads the given file and decompresses it if necessary.
// ROMs are commonly distributed inside .zip/.gz/.7z archives, so the
// loader accepts those directly; the first file in a multi-file
// archive is taken to be the ROM. Anything without a recognised
// archive extension is returned as-is.
func ReadROMFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("cartridge: gzip: %w", err)
		}
	case ".zip":
		zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("cartridge: zip: %w", err)
		}
		if len(zipReader.File) == 0 {
			return nil, fmt.Errorf("cartridge: zip: archive %q is empty", filename)
		}
		decoder, err = zipReader.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("cartridge: zip: %w", err)
		}
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("cartridge: 7z: %w", err)
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("cartridge: 7z: archive %q is empty", filename)
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("cartridge: 7z: %w", err)
		}
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}
