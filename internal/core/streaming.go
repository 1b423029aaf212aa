package core

// streaming.go prepares delimited text for the CSV reader:
//
//   - BOMSkippingReader: Removes the UTF-8 BOM (0xEF 0xBB 0xBF) written by Windows tools
//   - decodeText: UTF-8 first, then one retry as CP932 (Shift_JIS with Windows extensions)
//
// Inputs are fully materialized, so decoding works on byte slices and the
// reader only exists to strip the BOM in front of encoding/csv.

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding names reported by decodeText.
const (
	EncodingUTF8  = "utf-8"
	EncodingCP932 = "cp932"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	reader     io.Reader
	bomChecked bool
	pending    []byte
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.bomChecked {
		r.bomChecked = true

		var buf [3]byte
		n, err := io.ReadFull(r.reader, buf[:])
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		if n < 3 || !bytes.Equal(buf[:], utf8BOM) {
			r.pending = append(r.pending, buf[:n]...)
		}
	}

	if len(r.pending) > 0 {
		copied := copy(p, r.pending)
		r.pending = r.pending[copied:]
		return copied, nil
	}

	return r.reader.Read(p)
}

// decodeText returns data as a UTF-8 string. Bytes that are not valid
// UTF-8 are decoded once more as CP932; if that also leaves undecodable
// bytes the input fails with KindDecodeFailure.
func decodeText(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", "", newError(KindDecodeFailure, "input is neither utf-8 nor cp932", err)
	}
	// The decoder substitutes U+FFFD for byte sequences outside CP932.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", "", newError(KindDecodeFailure,
			fmt.Sprintf("input is neither utf-8 nor cp932 (%d bytes)", len(data)), nil)
	}
	return string(decoded), EncodingCP932, nil
}
