package csv

import (
	"bufio"
	"io"
)

const utf8BOM = "\uFEFF"

// skipBOM drops a leading UTF-8 byte order mark from r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReaderSize(r, 64*1024)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
