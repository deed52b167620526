package gelf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression selects the payload compression a GELF input accepts.
type Compression uint8

const (
	CompressNone Compression = iota
	CompressGzip
	CompressZlib
)

func (c Compression) String() string {
	switch c {
	case CompressNone:
		return "none"
	case CompressGzip:
		return "gzip"
	case CompressZlib:
		return "zlib"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Compress returns payload compressed with c. CompressNone returns payload
// itself.
func Compress(c Compression, payload []byte) ([]byte, error) {
	var (
		out bytes.Buffer
		w   io.WriteCloser
	)
	switch c {
	case CompressNone:
		return payload, nil
	case CompressGzip:
		w = gzip.NewWriter(&out)
	case CompressZlib:
		w = zlib.NewWriter(&out)
	default:
		return nil, fmt.Errorf("gelf: unknown compression %v", c)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
