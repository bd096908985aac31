package extractor

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// PlainText decodes text files. A UTF-8 or UTF-16 byte order mark selects
// the decoding; otherwise UTF-8 is assumed. Invalid byte sequences are
// dropped before decoding, so a U+FFFD present in the file is kept.
type PlainText struct{}

// NewPlainText creates a new plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// SupportedFormats implements Extractor.
func (e *PlainText) SupportedFormats() []string {
	return []string{"txt"}
}

// Extract implements Extractor. Text is returned as-is apart from decoding.
func (e *PlainText) Extract(_ context.Context, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		raw = raw[len(bomUTF8):]
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw[len(bomUTF16BE):], unicode.BigEndian)
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw[len(bomUTF16LE):], unicode.LittleEndian)
	}

	valid := strings.ToValidUTF8(string(raw), "")
	decoded, err := unicode.UTF8.NewDecoder().String(valid)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return decoded, nil
}

// decodeUTF16 decodes BOM-less UTF-16 after removing unpaired surrogates and
// a trailing odd byte.
func decodeUTF16(raw []byte, order unicode.Endianness) (string, error) {
	decoded, err := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder().Bytes(validUTF16(raw, order))
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(decoded), nil
}

// validUTF16 returns the code units of raw that form valid UTF-16.
func validUTF16(raw []byte, order unicode.Endianness) []byte {
	var bo binary.ByteOrder = binary.LittleEndian
	if order == unicode.BigEndian {
		bo = binary.BigEndian
	}

	n := len(raw) / 2
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		unit := bo.Uint16(raw[2*i:])
		switch {
		case unit >= 0xD800 && unit < 0xDC00:
			if i+1 < n {
				next := bo.Uint16(raw[2*i+2:])
				if next >= 0xDC00 && next < 0xE000 {
					out = append(out, raw[2*i:2*i+4]...)
					i++
				}
			}
		case unit >= 0xDC00 && unit < 0xE000:
		default:
			out = append(out, raw[2*i:2*i+2]...)
		}
	}
	return out
}
