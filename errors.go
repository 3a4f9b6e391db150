package rasterpng

import "github.com/pkg/errors"

// Kind classifies the ways a write can fail, independent of the underlying
// Go error type. Callers that need to react differently to different
// failures should switch on Kind rather than match error strings.
type Kind string

const (
	// KindUnsupportedShape means the input array's rank or channel count
	// does not match any of the recognized color models.
	KindUnsupportedShape Kind = "unsupported_shape"
	// KindUnsupportedDtype means the element width is neither 8 nor 16 bits.
	KindUnsupportedDtype Kind = "unsupported_dtype"
	// KindBitdepthConflict means a BitDepth override is incompatible with
	// the color type the rest of the input implies.
	KindBitdepthConflict Kind = "bitdepth_conflict"
	// KindTransparentWithAlpha means a Transparent color was given for an
	// image that already carries a full alpha channel.
	KindTransparentWithAlpha Kind = "transparent_with_alpha"
	// KindPaletteOverflow means more than 256 distinct colors were found
	// while building a palette.
	KindPaletteOverflow Kind = "palette_overflow"
	// KindFrameShapeMismatch means an APNG frame's shape or depth differs
	// from the first frame.
	KindFrameShapeMismatch Kind = "frame_shape_mismatch"
	// KindInvalidOption means an option value is out of range, e.g.
	// MaxChunkLen < 0 or DelayDen == 0.
	KindInvalidOption Kind = "invalid_option"
	// KindOversizedChunk means a chunk payload exceeds the PNG limit of
	// 2^31-1 bytes.
	KindOversizedChunk Kind = "oversized_chunk"
)

// Error is the error type returned for every validation failure raised by
// this package. Sink (I/O) failures are not converted to an Error; they are
// returned with added context (errors.Wrap), and the original error remains
// reachable through errors.Cause.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return "rasterpng: " + e.Msg
}

func newError(kind Kind, msg string) error {
	return errors.WithStack(&Error{Kind: kind, Msg: msg})
}

// KindOf reports the Kind of err if it (or something it wraps) is an *Error,
// and false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
