// Package rasterpng encodes in-memory raster images into the PNG file
// format, and finite sequences of equal-shape raster images into the
// Animated PNG (APNG) extension.
//
// The package mirrors the shape-driven API of array-oriented PNG writers:
// callers hand over a rectangular array of samples (2-D for grayscale,
// 3-D for multi-channel) plus a small set of encoding options, and the
// package infers a valid PNG color model, filters and compresses the
// rows, and frames the result into chunks.
package rasterpng

// Raster is a rectangular pixel array: shape (Height, Width) for
// single-channel data, or (Height, Width, Channels) for multi-channel data.
// Samples are stored uniformly as uint16 regardless of Depth; values must
// fit in [0, 2^Depth). Depth is 8 or 16.
//
// Pix is row-major and channel-interleaved: the sample for row y, column x,
// channel c lives at Pix[(y*Width+x)*planes(Channels)+c].
type Raster struct {
	Height   int
	Width    int
	Channels int // 0 for a 2-D array, else 2, 3 or 4
	Depth    int // 8 or 16
	Pix      []uint16
}

// planes returns the number of interleaved samples per pixel.
func (r *Raster) planes() int {
	if r.Channels == 0 {
		return 1
	}
	return r.Channels
}

// NewGray wraps a 2-D grayscale array. depth is the element width (8 or 16).
func NewGray(height, width, depth int, pix []uint16) Raster {
	return Raster{Height: height, Width: width, Channels: 0, Depth: depth, Pix: pix}
}

// NewMultiChannel wraps a 3-D array with the given channel count (2, 3 or
// 4) and element width (8 or 16).
func NewMultiChannel(height, width, channels, depth int, pix []uint16) Raster {
	return Raster{Height: height, Width: width, Channels: channels, Depth: depth, Pix: pix}
}

func (r *Raster) at(y, x, c int) uint16 {
	return r.Pix[(y*r.Width+x)*r.planes()+c]
}

func (r *Raster) validateShape() error {
	if r.Height < 1 || r.Width < 1 {
		return newError(KindUnsupportedShape, "height and width must be >= 1")
	}
	if r.Channels != 0 && r.Channels != 2 && r.Channels != 3 && r.Channels != 4 {
		return newError(KindUnsupportedShape, "channels must be 0 (2-D), 2, 3 or 4")
	}
	if r.Depth != 8 && r.Depth != 16 {
		return newError(KindUnsupportedDtype, "element width must be 8 or 16 bits")
	}
	want := r.Height * r.Width * r.planes()
	if len(r.Pix) != want {
		return newError(KindUnsupportedShape, "pixel buffer length does not match shape")
	}
	return nil
}

// Timestamp is the last-modification time recorded in a tIME chunk.
type Timestamp struct {
	Year                             int
	Month, Day, Hour, Minute, Second int
}

// Options configures a single PNG write. The zero value selects a bit
// depth inferred from the input, no transparency, no palette, one IDAT
// chunk per image, and no tIME/gAMA chunks.
type Options struct {
	// BitDepth overrides the inferred bit depth for 2-D (grayscale)
	// input. Accepts 1, 2 or 4 to pack an 8-bit source down to fewer
	// bits per sample, or the source's own depth (8 or 16) as a no-op
	// confirmation. Zero means no override.
	BitDepth int

	// Transparent designates one sample value (grayscale) or an RGB
	// triplet (truecolor) as transparent, emitted as tRNS. Forbidden for
	// inputs that already carry an alpha channel.
	Transparent []uint16

	// UsePalette requests palette construction for 8-bit 3- or 4-channel
	// input.
	UsePalette bool

	// MaxChunkLen bounds the payload length of any IDAT chunk, and the
	// image-data part of any fdAT chunk (whose payload adds a 4-byte
	// sequence number). Zero means unbounded (the whole compressed stream
	// in one chunk).
	MaxChunkLen int

	// Timestamp, if non-nil, is emitted as a tIME chunk.
	Timestamp *Timestamp

	// Gamma, if non-zero, is emitted as a gAMA chunk (rounded to
	// gamma*100000).
	Gamma float64
}

// colorModel is the inferred (color_type, bit_depth) pair, plus the
// palette colors/alphas/indices when UsePalette produced one.
type colorModel struct {
	colorType uint8
	bitDepth  uint8
	pal       *paletteResult
}

// inferColorModel is a total function from (shape, element width, options)
// to a PNG color model, or a classified error.
func inferColorModel(r *Raster, opts *Options) (colorModel, error) {
	if err := r.validateShape(); err != nil {
		return colorModel{}, err
	}
	if len(opts.Transparent) > 0 && opts.UsePalette {
		return colorModel{}, newError(KindInvalidOption, "transparent color combined with use_palette is ambiguous; set at most one")
	}

	switch r.Channels {
	case 0: // 2-D grayscale
		bitDepth := r.Depth
		if opts.BitDepth != 0 && opts.BitDepth != r.Depth {
			if r.Depth != 8 {
				return colorModel{}, newError(KindBitdepthConflict, "bitdepth override requires 8-bit source samples")
			}
			switch opts.BitDepth {
			case 1, 2, 4:
				bitDepth = opts.BitDepth
			default:
				return colorModel{}, newError(KindBitdepthConflict, "bitdepth override for 8-bit grayscale must be 1, 2, 4 or 8")
			}
		}
		if err := checkTransparentGray(opts); err != nil {
			return colorModel{}, err
		}
		return colorModel{colorType: 0, bitDepth: uint8(bitDepth)}, nil

	case 2: // gray+alpha
		if opts.BitDepth != 0 {
			return colorModel{}, newError(KindBitdepthConflict, "bitdepth override is not valid for gray+alpha input")
		}
		if len(opts.Transparent) > 0 {
			return colorModel{}, newError(KindTransparentWithAlpha, "transparent color is invalid for color type 4 (gray+alpha)")
		}
		return colorModel{colorType: 4, bitDepth: uint8(r.Depth)}, nil

	case 3: // RGB or palette
		if opts.BitDepth != 0 {
			return colorModel{}, newError(KindBitdepthConflict, "bitdepth override is not valid for 3-channel input")
		}
		if r.Depth == 8 && opts.UsePalette {
			pal, err := buildPalette(r, false)
			if err != nil {
				return colorModel{}, err
			}
			return colorModel{colorType: 3, bitDepth: 8, pal: pal}, nil
		}
		if err := checkTransparentRGB(opts); err != nil {
			return colorModel{}, err
		}
		return colorModel{colorType: 2, bitDepth: uint8(r.Depth)}, nil

	case 4: // RGBA or palette
		if opts.BitDepth != 0 {
			return colorModel{}, newError(KindBitdepthConflict, "bitdepth override is not valid for 4-channel input")
		}
		if len(opts.Transparent) > 0 {
			return colorModel{}, newError(KindTransparentWithAlpha, "transparent color is invalid for color type 6 (RGBA)")
		}
		if r.Depth == 8 && opts.UsePalette {
			pal, err := buildPalette(r, true)
			if err != nil {
				return colorModel{}, err
			}
			return colorModel{colorType: 3, bitDepth: 8, pal: pal}, nil
		}
		return colorModel{colorType: 6, bitDepth: uint8(r.Depth)}, nil
	}
	return colorModel{}, newError(KindUnsupportedShape, "unrecognized channel count")
}

func checkTransparentGray(opts *Options) error {
	if len(opts.Transparent) == 0 {
		return nil
	}
	if len(opts.Transparent) != 1 {
		return newError(KindInvalidOption, "grayscale transparent color must be a single sample")
	}
	return nil
}

func checkTransparentRGB(opts *Options) error {
	if len(opts.Transparent) == 0 {
		return nil
	}
	if len(opts.Transparent) != 3 {
		return newError(KindInvalidOption, "RGB transparent color must be a 3-sample triplet")
	}
	return nil
}
