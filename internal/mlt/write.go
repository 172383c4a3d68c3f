package mlt

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// header is the XML declaration MLT writes for its own documents.
const header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Encode writes d as an indented MLT XML document.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes d to path.
// Unless overwrite is set it fails with ErrOutputExists when path exists.
// On write failure, the partial file is removed.
func WriteFile(path string, d *Document, overwrite bool) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	writeErr := func() error {
		bw := bufio.NewWriter(f)
		if err := d.Encode(bw); err != nil {
			_ = f.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, writeErr)
	}

	return nil
}
