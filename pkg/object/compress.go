package object

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultCompression is the zlib level used when none is configured.
const DefaultCompression = zlib.DefaultCompression

// compressZlib deflates data into a zlib stream. For a fixed level the output
// is a pure function of the input, so rewriting an object yields identical
// bytes.
func compressZlib(data []byte) ([]byte, error) {
	return compressZlibLevel(data, DefaultCompression)
}

func compressZlibLevel(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressZlib inflates a complete zlib stream.
func decompressZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
