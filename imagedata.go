package rasterpng

import (
	"bytes"
	"compress/zlib"

	"github.com/pkg/errors"
)

// rasterSource adapts a Raster (or a palette index plane) to rowSource for
// the chosen color model.
type rasterSource struct {
	r   *Raster
	pal *paletteResult
}

func (s rasterSource) sample(y, x, c int) uint16 {
	if s.pal != nil {
		return uint16(s.pal.index[y*s.r.Width+x])
	}
	return s.r.at(y, x, c)
}

// encodedImage is the filtered, zlib-compressed image stream, already
// partitioned into chunk-sized slices.
type encodedImage struct {
	slices [][]byte
}

// encodeImageData filters every row, compresses the concatenated stream
// with zlib, and splits the compressed bytes into chunks no longer than
// maxChunkLen (0 means unbounded).
func encodeImageData(r *Raster, cm colorModel, maxChunkLen int) (*encodedImage, error) {
	if maxChunkLen < 0 {
		return nil, newError(KindInvalidOption, "max_chunk_len must not be negative")
	}

	channels := channelsForColorType(cm.colorType)
	src := rasterSource{r: r, pal: cm.pal}
	filtered := packRows(src, r.Height, r.Width, int(cm.bitDepth), channels)

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(filtered); err != nil {
		return nil, errors.Wrap(err, "rasterpng: zlib compress")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "rasterpng: zlib close")
	}

	compressed := buf.Bytes()
	if maxChunkLen == 0 || len(compressed) <= maxChunkLen {
		if len(compressed) == 0 {
			return &encodedImage{slices: [][]byte{{}}}, nil
		}
		return &encodedImage{slices: [][]byte{compressed}}, nil
	}

	var slices [][]byte
	for off := 0; off < len(compressed); off += maxChunkLen {
		end := off + maxChunkLen
		if end > len(compressed) {
			end = len(compressed)
		}
		slices = append(slices, compressed[off:end])
	}
	return &encodedImage{slices: slices}, nil
}

// channelsForColorType maps a PNG color type to its channel count, used to
// interleave samples when packing rows.
func channelsForColorType(colorType uint8) int {
	switch colorType {
	case 0, 3:
		return 1
	case 2:
		return 3
	case 4:
		return 2
	case 6:
		return 4
	}
	return 1
}
