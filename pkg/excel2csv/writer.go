package excel2csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVOptions controls the CSV output format.
type CSVOptions struct {
	// Delimiter separates fields.
	Delimiter rune
	// CRLF ends records with \r\n instead of \n.
	CRLF bool
	// Encoding is a WHATWG encoding label such as "utf-8" or "windows-1252".
	Encoding string
}

// DefaultCSVOptions returns comma separated, \n terminated UTF-8.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter: ',',
		Encoding:  "utf-8",
	}
}

// Validate checks the delimiter and the encoding label.
func (o CSVOptions) Validate() error {
	if o.Delimiter == 0 || o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' ||
		!utf8.ValidRune(o.Delimiter) || o.Delimiter == utf8.RuneError {
		return fmt.Errorf("%w: delimiter %q", ErrInvalidOptions, o.Delimiter)
	}
	if _, err := o.encoding(); err != nil {
		return err
	}
	return nil
}

// encoding returns nil for UTF-8, which needs no transcoding.
func (o CSVOptions) encoding() (encoding.Encoding, error) {
	if o.Encoding == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(o.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %q: %v", ErrInvalidOptions, o.Encoding, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// WriteCSV writes rows to path, one record per row and one field per cell.
// Data goes to a temporary file in the same directory that is renamed over
// path on success, so a failed write leaves any previous file untouched.
func WriteCSV(path string, rows [][]string, opts CSVOptions) (err error) {
	enc, err := opts.encoding()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var tw *transform.Writer
	if enc != nil {
		tw = transform.NewWriter(tmp, encoding.ReplaceUnsupported(enc.NewEncoder()))
		w = tw
	}

	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	cw.UseCRLF = opts.CRLF
	if err = cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	if tw != nil {
		if err = tw.Close(); err != nil {
			return fmt.Errorf("encode %q: %w", path, err)
		}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename onto %q: %w", path, err)
	}
	return nil
}
