package implementations

import (
	"bytes"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// detectEncoding sniffs the character encoding of input, defaulting to
// UTF-8 when it cannot be determined.
func detectEncoding(input []byte) string {
	_, name, ok := charset.DetermineEncoding(input, "")
	if !ok || name == "" {
		return "utf-8"
	}
	return name
}

// transcodeToUTF8 converts input from its detected encoding to UTF-8. If
// the detected encoding is already UTF-8, input is returned unchanged.
func transcodeToUTF8(input []byte) ([]byte, error) {
	enc, name, _ := charset.DetermineEncoding(input, "")
	if name == "utf-8" || name == "" {
		return input, nil
	}
	if enc == unicode.UTF8 {
		return input, nil
	}

	reader := transform(enc, input)
	return io.ReadAll(reader)
}

func transform(enc encoding.Encoding, input []byte) io.Reader {
	return enc.NewDecoder().Reader(bytes.NewReader(input))
}
