package rasterpng

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WritePNG encodes a single raster image to w: signature, IHDR, optional
// PLTE/tRNS/tIME/gAMA, one or more IDAT chunks, IEND.
func WritePNG(w io.Writer, r Raster, opts Options) error {
	cm, err := inferColorModel(&r, &opts)
	if err != nil {
		return err
	}
	img, err := encodeImageData(&r, cm, opts.MaxChunkLen)
	if err != nil {
		return err
	}

	e := &encoder{w: w}
	e.writeSignature()
	writeIHDR(e, r.Width, r.Height, cm.bitDepth, cm.colorType)
	writeAncillaryBeforeIDAT(e, &r, cm, &opts)
	for _, slice := range img.slices {
		e.writeChunk("IDAT", slice)
	}
	e.writeChunk("IEND", nil)

	if e.err != nil {
		return errors.WithStack(e.err)
	}
	return nil
}

// PNGBytes encodes r to a new byte slice.
func PNGBytes(r Raster, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, r, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG encodes r and writes it to filePath.
func SavePNG(filePath string, r Raster, opts Options) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, "rasterpng: create file")
	}
	defer f.Close()
	return WritePNG(f, r, opts)
}

func writeIHDR(e *encoder, width, height int, bitDepth, colorType uint8) {
	var buf [13]byte
	writeUint32(buf[0:4], uint32(width))
	writeUint32(buf[4:8], uint32(height))
	buf[8] = bitDepth
	buf[9] = colorType
	buf[10] = 0 // compression method
	buf[11] = 0 // filter method
	buf[12] = 0 // interlace method
	e.writeChunk("IHDR", buf[:])
}

// writeAncillaryBeforeIDAT emits the chunks that must appear between IHDR
// and the first IDAT: PLTE/tRNS for palette images, tRNS for a transparent
// gray/RGB color, tIME, gAMA.
func writeAncillaryBeforeIDAT(e *encoder, r *Raster, cm colorModel, opts *Options) {
	if cm.colorType == 3 {
		writePLTE(e, cm.pal)
		if cm.pal.hasAlpha {
			writeTRNSPalette(e, cm.pal)
		}
	}
	if (cm.colorType == 0 || cm.colorType == 2) && len(opts.Transparent) > 0 {
		writeTRNSColor(e, cm.colorType, opts.Transparent)
	}
	if opts.Timestamp != nil {
		writeTIME(e, opts.Timestamp)
	}
	if opts.Gamma != 0 {
		writeGAMA(e, opts.Gamma)
	}
}

func writePLTE(e *encoder, pal *paletteResult) {
	buf := make([]byte, 3*len(pal.colors))
	for i, c := range pal.colors {
		buf[3*i+0] = c.R
		buf[3*i+1] = c.G
		buf[3*i+2] = c.B
	}
	e.writeChunk("PLTE", buf)
}

func writeTRNSPalette(e *encoder, pal *paletteResult) {
	n := pal.trnsPrefixLen()
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = pal.colors[i].A
	}
	e.writeChunk("tRNS", buf)
}

func writeTRNSColor(e *encoder, colorType uint8, transparent []uint16) {
	if colorType == 0 {
		var buf [2]byte
		writeUint16(buf[:], transparent[0])
		e.writeChunk("tRNS", buf[:])
		return
	}
	var buf [6]byte
	writeUint16(buf[0:2], transparent[0])
	writeUint16(buf[2:4], transparent[1])
	writeUint16(buf[4:6], transparent[2])
	e.writeChunk("tRNS", buf[:])
}

func writeTIME(e *encoder, t *Timestamp) {
	var buf [7]byte
	writeUint16(buf[0:2], uint16(t.Year))
	buf[2] = uint8(t.Month)
	buf[3] = uint8(t.Day)
	buf[4] = uint8(t.Hour)
	buf[5] = uint8(t.Minute)
	buf[6] = uint8(t.Second)
	e.writeChunk("tIME", buf[:])
}

func writeGAMA(e *encoder, gamma float64) {
	var buf [4]byte
	writeUint32(buf[:], uint32(gamma*100000+0.5))
	e.writeChunk("gAMA", buf[:])
}
