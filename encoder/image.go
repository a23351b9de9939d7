package encoder

import (
	"encoding/binary"
	"io"
)

// WriteTo writes the image's header, code bytes, and data bytes to w, in
// the fixed layout:
//
//	8 bytes  magic "ESET-VM2"
//	4 bytes  code_byte_length  (little-endian uint32)
//	4 bytes  data_size         (little-endian uint32)
//	4 bytes  data_initial_length (little-endian uint32)
//	code_byte_length bytes of code
//	data_initial_length bytes of data
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := io.WriteString(w, Magic)
	written += int64(n)
	if err != nil {
		return written, err
	}

	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(img.Code)))
	binary.LittleEndian.PutUint32(header[4:8], img.DataSize)
	binary.LittleEndian.PutUint32(header[8:12], img.DataInitialLength)

	n, err = w.Write(header[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = w.Write(img.Code)
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = w.Write(img.Data)
	written += int64(n)
	return written, err
}
