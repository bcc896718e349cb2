// Package input loads guideline and bibliography text from files, stdin or PDFs.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/gref/internal/pdf"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader resolves input paths to text.
type Reader struct {
	Stdin io.Reader
}

// NewReader returns a Reader bound to os.Stdin.
func NewReader() *Reader {
	return &Reader{Stdin: os.Stdin}
}

// Read returns the text behind path. "-" reads standard input, a ".pdf"
// extension or a PDF header selects PDF text extraction, anything else is
// read as UTF-8 text.
func (r *Reader) Read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no input path given")
	}

	if path != Stdin && strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdf.ExtractText(path)
	}

	data, err := r.readBytes(path)
	if err != nil {
		return "", err
	}

	if pdf.IsPDF(data) {
		return pdf.ExtractTextReader(bytes.NewReader(data), int64(len(data)))
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	return string(data), nil
}

func (r *Reader) readBytes(path string) ([]byte, error) {
	if path == Stdin {
		if r.Stdin == nil {
			return nil, fmt.Errorf("stdin not available")
		}
		data, err := io.ReadAll(r.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Open returns a stream of the text behind path. Plain text files are
// streamed as they are; stdin and PDFs are read in full first.
func (r *Reader) Open(path string) (io.ReadCloser, error) {
	if path == Stdin || path == "" || strings.EqualFold(filepath.Ext(path), ".pdf") {
		return r.openBuffered(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	head, _ := br.Peek(len("%PDF-"))
	if pdf.IsPDF(head) {
		f.Close()
		return r.openBuffered(path)
	}

	return struct {
		io.Reader
		io.Closer
	}{br, f}, nil
}

func (r *Reader) openBuffered(path string) (io.ReadCloser, error) {
	text, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(text)), nil
}
