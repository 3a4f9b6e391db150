package rasterpng

import (
	"hash/crc32"
	"io"

	"github.com/pkg/errors"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

func writeUint16(b []byte, u uint16) {
	b[0] = uint8(u >> 8)
	b[1] = uint8(u)
}

func writeUint32(b []byte, u uint32) {
	b[0] = uint8(u >> 24)
	b[1] = uint8(u >> 16)
	b[2] = uint8(u >> 8)
	b[3] = uint8(u)
}

// encoder accumulates the first error from any write: once err is set,
// every subsequent write is a no-op, so callers can chain writeChunk
// calls without checking each one.
type encoder struct {
	w      io.Writer
	err    error
	header [8]byte
	footer [4]byte
	seqNum uint32
}

// writeChunk writes one PNG chunk: length(4) ‖ type(4) ‖ payload ‖ crc32(4).
func (e *encoder) writeChunk(name string, payload []byte) {
	if e.err != nil {
		return
	}
	n := uint32(len(payload))
	if n > 0x7FFFFFFF {
		e.err = newError(KindOversizedChunk, name+" chunk payload exceeds 2^31-1 bytes")
		return
	}
	writeUint32(e.header[:4], n)
	e.header[4] = name[0]
	e.header[5] = name[1]
	e.header[6] = name[2]
	e.header[7] = name[3]

	crc := crc32.NewIEEE()
	crc.Write(e.header[4:8])
	crc.Write(payload)
	writeUint32(e.footer[:4], crc.Sum32())

	if _, e.err = e.w.Write(e.header[:8]); e.err != nil {
		e.err = errors.Wrap(e.err, "rasterpng: write chunk header")
		return
	}
	if len(payload) > 0 {
		if _, e.err = e.w.Write(payload); e.err != nil {
			e.err = errors.Wrap(e.err, "rasterpng: write chunk payload")
			return
		}
	}
	if _, e.err = e.w.Write(e.footer[:4]); e.err != nil {
		e.err = errors.Wrap(e.err, "rasterpng: write chunk crc")
	}
}

func (e *encoder) writeSignature() {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, pngSignature)
	if e.err != nil {
		e.err = errors.Wrap(e.err, "rasterpng: write signature")
	}
}

// nextSeq consumes and returns the next APNG sequence number.
func (e *encoder) nextSeq() uint32 {
	n := e.seqNum
	e.seqNum++
	return n
}
