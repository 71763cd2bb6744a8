// Package encoding turns imported bytes of unknown provenance into UTF-8
// text. Lead lists come from spreadsheets saved on old Windows machines
// as often as from clean exports, so the decoder has to guess well.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Normalize decodes data to a UTF-8 string.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Already valid UTF-8 passes through unchanged
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func Normalize(data []byte) (string, error) {
	// 1. BOM.
	if bytes.HasPrefix(data, bomUTF8) {
		return string(data[len(bomUTF8):]), nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		return decode(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes)
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		return decode(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes)
	}

	// 2. Valid UTF-8 passes through.
	if utf8.Valid(data) {
		return string(data), nil
	}

	// 3. Heuristic detection.
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return string(data), nil
		case "ISO-8859-9":
			return decode(data, charmap.ISO8859_9.NewDecoder().Bytes)
		}
	}

	// 4. Windows-1252 covers the remaining single-byte cases, including
	// ISO-8859-1 which it supersets.
	return decode(data, charmap.Windows1252.NewDecoder().Bytes)
}

func decode(data []byte, fn func([]byte) ([]byte, error)) (string, error) {
	out, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("decoding import data: %w", err)
	}

	return string(out), nil
}
