package rasterpng

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Frame is one APNG frame: a pixel array plus its frame-control fields.
// Defaults, when built via WriteAPNG's broadcasting options, are
// DelayNum=0, DelayDen=1, DisposeOp=0, BlendOp=1, XOffset=0, YOffset=0.
type Frame struct {
	Raster    Raster
	DelayNum  uint16
	DelayDen  uint16
	DisposeOp uint8
	BlendOp   uint8
	XOffset   uint32
	YOffset   uint32
}

// AnimOptions configures an APNG write. Embedded Options apply to the
// color model and ancillary chunks shared by every frame. Each per-frame
// list must be either empty (use the default), length 1 (broadcast to
// every frame) or exactly len(frames).
type AnimOptions struct {
	Options

	// NumPlays is the loop count; 0 means loop forever.
	NumPlays uint32

	DelayNum  []uint16
	DelayDen  []uint16
	DisposeOp []uint8
	BlendOp   []uint8
	XOffset   []uint32
	YOffset   []uint32
}

func broadcast[T any](vals []T, n int, def T) ([]T, error) {
	switch len(vals) {
	case 0:
		out := make([]T, n)
		for i := range out {
			out[i] = def
		}
		return out, nil
	case 1:
		out := make([]T, n)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	case n:
		out := make([]T, n)
		copy(out, vals)
		return out, nil
	default:
		return nil, newError(KindInvalidOption, "per-frame option list must have length 1 or match the frame count")
	}
}

// buildFrames applies AnimOptions' broadcasting rules to produce one
// Frame per input raster.
func buildFrames(rasters []Raster, opts *AnimOptions) ([]Frame, error) {
	n := len(rasters)
	if n == 0 {
		return nil, newError(KindInvalidOption, "at least one frame is required")
	}
	delayNum, err := broadcast(opts.DelayNum, n, uint16(0))
	if err != nil {
		return nil, err
	}
	delayDen, err := broadcast(opts.DelayDen, n, uint16(1))
	if err != nil {
		return nil, err
	}
	for _, d := range delayDen {
		if d == 0 {
			return nil, newError(KindInvalidOption, "delay_den must be nonzero")
		}
	}
	disposeOp, err := broadcast(opts.DisposeOp, n, uint8(0))
	if err != nil {
		return nil, err
	}
	blendOp, err := broadcast(opts.BlendOp, n, uint8(1))
	if err != nil {
		return nil, err
	}
	xOff, err := broadcast(opts.XOffset, n, uint32(0))
	if err != nil {
		return nil, err
	}
	yOff, err := broadcast(opts.YOffset, n, uint32(0))
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, n)
	for i, r := range rasters {
		frames[i] = Frame{
			Raster:    r,
			DelayNum:  delayNum[i],
			DelayDen:  delayDen[i],
			DisposeOp: disposeOp[i],
			BlendOp:   blendOp[i],
			XOffset:   xOff[i],
			YOffset:   yOff[i],
		}
	}
	return frames, nil
}

func sameShape(a, b *Raster) bool {
	return a.Height == b.Height && a.Width == b.Width && a.Channels == b.Channels && a.Depth == b.Depth
}

// WriteAPNG encodes an APNG byte stream: IHDR and ancillary chunks from
// the first frame, acTL, then per frame an fcTL followed by IDAT (frame
// 0) or fdAT (later frames), sharing one sequence counter across every
// fcTL and fdAT chunk, and finally IEND.
func WriteAPNG(w io.Writer, rasters []Raster, opts AnimOptions) error {
	frames, err := buildFrames(rasters, &opts)
	if err != nil {
		return err
	}
	first := &frames[0].Raster
	for i := 1; i < len(frames); i++ {
		if !sameShape(first, &frames[i].Raster) {
			return newError(KindFrameShapeMismatch, "every APNG frame must share the first frame's shape and element width")
		}
	}

	cm, err := inferColorModel(first, &opts.Options)
	if err != nil {
		return err
	}

	// Palette images need one PLTE shared by every frame: build it from
	// the union of colors across all frames before emitting any chunk.
	var perFramePal []*paletteResult
	if cm.colorType == 3 {
		withAlpha := first.Channels == 4
		mp := newMultiPalette()
		perFramePal = make([]*paletteResult, len(frames))
		for i := range frames {
			pr, err := mp.indexFrame(&frames[i].Raster, withAlpha)
			if err != nil {
				return err
			}
			perFramePal[i] = pr
		}
		// The single global PLTE/tRNS must reflect the union of colors
		// across every frame, not just the first.
		cm.pal = mp.result()
	}

	e := &encoder{w: w}
	e.writeSignature()
	writeIHDR(e, first.Width, first.Height, cm.bitDepth, cm.colorType)
	writeAncillaryBeforeIDAT(e, first, cm, &opts.Options)
	writeACTL(e, len(frames), opts.NumPlays)

	for i := range frames {
		fr := &frames[i]
		frameCM := cm
		if perFramePal != nil {
			frameCM.pal = perFramePal[i]
		}
		writeFCTL(e, fr)
		img, err := encodeImageData(&fr.Raster, frameCM, opts.MaxChunkLen)
		if err != nil {
			return err
		}
		if i == 0 {
			for _, slice := range img.slices {
				e.writeChunk("IDAT", slice)
			}
		} else {
			for _, slice := range img.slices {
				writeFDAT(e, slice)
			}
		}
	}
	e.writeChunk("IEND", nil)

	if e.err != nil {
		return errors.WithStack(e.err)
	}
	return nil
}

// APNGBytes encodes rasters to a new byte slice.
func APNGBytes(rasters []Raster, opts AnimOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteAPNG(&buf, rasters, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAPNG encodes rasters and writes the result to filePath.
func SaveAPNG(filePath string, rasters []Raster, opts AnimOptions) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, "rasterpng: create file")
	}
	defer f.Close()
	return WriteAPNG(f, rasters, opts)
}

func writeACTL(e *encoder, numFrames int, numPlays uint32) {
	var buf [8]byte
	writeUint32(buf[0:4], uint32(numFrames))
	writeUint32(buf[4:8], numPlays)
	e.writeChunk("acTL", buf[:])
}

func writeFCTL(e *encoder, fr *Frame) {
	var buf [26]byte
	writeUint32(buf[0:4], e.nextSeq())
	writeUint32(buf[4:8], uint32(fr.Raster.Width))
	writeUint32(buf[8:12], uint32(fr.Raster.Height))
	writeUint32(buf[12:16], fr.XOffset)
	writeUint32(buf[16:20], fr.YOffset)
	writeUint16(buf[20:22], fr.DelayNum)
	writeUint16(buf[22:24], fr.DelayDen)
	buf[24] = fr.DisposeOp
	buf[25] = fr.BlendOp
	e.writeChunk("fcTL", buf[:])
}

func writeFDAT(e *encoder, slice []byte) {
	buf := make([]byte, 4+len(slice))
	writeUint32(buf[0:4], e.nextSeq())
	copy(buf[4:], slice)
	e.writeChunk("fdAT", buf)
}

// multiPalette accumulates a palette shared across every APNG frame, so
// that a single PLTE chunk serves the whole animation.
type multiPalette struct {
	colors []rgba
	seen   map[rgba]uint8
}

func newMultiPalette() *multiPalette {
	return &multiPalette{seen: make(map[rgba]uint8, 64)}
}

func (m *multiPalette) indexFrame(r *Raster, withAlpha bool) (*paletteResult, error) {
	pr := &paletteResult{index: make([]uint8, r.Height*r.Width)}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			var c rgba
			c.R = uint8(r.at(y, x, 0))
			c.G = uint8(r.at(y, x, 1))
			c.B = uint8(r.at(y, x, 2))
			if withAlpha {
				c.A = uint8(r.at(y, x, 3))
			} else {
				c.A = 255
			}
			idx, ok := m.seen[c]
			if !ok {
				if len(m.colors) >= maxPaletteEntries {
					return nil, newError(KindPaletteOverflow, "more than 256 distinct colors across APNG frames")
				}
				idx = uint8(len(m.colors))
				m.seen[c] = idx
				m.colors = append(m.colors, c)
			}
			pr.index[y*r.Width+x] = idx
		}
	}
	return pr, nil
}

// result returns the accumulated palette after every frame has been
// indexed, for use as the single PLTE/tRNS shared by the whole animation.
func (m *multiPalette) result() *paletteResult {
	pr := &paletteResult{colors: m.colors}
	for _, c := range m.colors {
		if c.A != 255 {
			pr.hasAlpha = true
			break
		}
	}
	return pr
}
