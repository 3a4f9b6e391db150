package rasterpng

import "testing"

func TestInferColorModelGray8(t *testing.T) {
	r := NewGray(2, 2, 8, []uint16{0, 1, 2, 3})
	cm, err := inferColorModel(&r, &Options{})
	if err != nil {
		t.Fatalf("inferColorModel: %v", err)
	}
	if cm.colorType != 0 || cm.bitDepth != 8 {
		t.Errorf("got colorType=%d bitDepth=%d, want 0/8", cm.colorType, cm.bitDepth)
	}
}

func TestInferColorModelBitDepthOverride(t *testing.T) {
	r := NewGray(2, 2, 8, []uint16{0, 1, 0, 1})
	cm, err := inferColorModel(&r, &Options{BitDepth: 1})
	if err != nil {
		t.Fatalf("inferColorModel: %v", err)
	}
	if cm.colorType != 0 || cm.bitDepth != 1 {
		t.Errorf("got colorType=%d bitDepth=%d, want 0/1", cm.colorType, cm.bitDepth)
	}
}

func TestInferColorModelBitDepthOverrideRejects16Bit(t *testing.T) {
	r := NewGray(2, 2, 16, []uint16{0, 1, 0, 1})
	_, err := inferColorModel(&r, &Options{BitDepth: 1})
	if k, ok := KindOf(err); !ok || k != KindBitdepthConflict {
		t.Fatalf("got err=%v, want KindBitdepthConflict", err)
	}
}

func TestInferColorModelBitDepthOverrideMatchingNativeDepth(t *testing.T) {
	r8 := NewGray(2, 2, 8, []uint16{0, 1, 0, 1})
	cm, err := inferColorModel(&r8, &Options{BitDepth: 8})
	if err != nil {
		t.Fatalf("inferColorModel (8-bit source, BitDepth=8): %v", err)
	}
	if cm.colorType != 0 || cm.bitDepth != 8 {
		t.Errorf("got colorType=%d bitDepth=%d, want 0/8", cm.colorType, cm.bitDepth)
	}

	r16 := NewGray(2, 2, 16, []uint16{0, 1, 0, 1})
	cm, err = inferColorModel(&r16, &Options{BitDepth: 16})
	if err != nil {
		t.Fatalf("inferColorModel (16-bit source, BitDepth=16): %v", err)
	}
	if cm.colorType != 0 || cm.bitDepth != 16 {
		t.Errorf("got colorType=%d bitDepth=%d, want 0/16", cm.colorType, cm.bitDepth)
	}
}

func TestInferColorModelRGBA(t *testing.T) {
	r := NewMultiChannel(2, 2, 4, 8, make([]uint16, 2*2*4))
	cm, err := inferColorModel(&r, &Options{})
	if err != nil {
		t.Fatalf("inferColorModel: %v", err)
	}
	if cm.colorType != 6 {
		t.Errorf("got colorType=%d, want 6 (RGBA)", cm.colorType)
	}
}

func TestInferColorModelGrayAlphaRejectsTransparent(t *testing.T) {
	r := NewMultiChannel(2, 2, 2, 8, make([]uint16, 2*2*2))
	_, err := inferColorModel(&r, &Options{Transparent: []uint16{0}})
	if k, ok := KindOf(err); !ok || k != KindTransparentWithAlpha {
		t.Fatalf("got err=%v, want KindTransparentWithAlpha", err)
	}
}

func TestInferColorModelPaletteAndTransparentRejected(t *testing.T) {
	r := NewMultiChannel(2, 2, 3, 8, make([]uint16, 2*2*3))
	_, err := inferColorModel(&r, &Options{UsePalette: true, Transparent: []uint16{0, 0, 0}})
	if k, ok := KindOf(err); !ok || k != KindInvalidOption {
		t.Fatalf("got err=%v, want KindInvalidOption", err)
	}
}

func TestInferColorModelUsePalette(t *testing.T) {
	pix := []uint16{
		0, 0, 0, 255, 255, 255,
		255, 255, 255, 0, 0, 0,
	}
	r := NewMultiChannel(2, 2, 3, 8, pix)
	cm, err := inferColorModel(&r, &Options{UsePalette: true})
	if err != nil {
		t.Fatalf("inferColorModel: %v", err)
	}
	if cm.colorType != 3 || cm.bitDepth != 8 {
		t.Errorf("got colorType=%d bitDepth=%d, want 3/8", cm.colorType, cm.bitDepth)
	}
	if len(cm.pal.colors) != 2 {
		t.Errorf("got %d palette colors, want 2", len(cm.pal.colors))
	}
}

func TestValidateShapeRejectsBadBuffer(t *testing.T) {
	r := NewGray(2, 2, 8, []uint16{0, 1, 2})
	_, err := inferColorModel(&r, &Options{})
	if k, ok := KindOf(err); !ok || k != KindUnsupportedShape {
		t.Fatalf("got err=%v, want KindUnsupportedShape", err)
	}
}

func TestValidateShapeRejectsBadDepth(t *testing.T) {
	r := NewGray(2, 2, 12, []uint16{0, 1, 2, 3})
	_, err := inferColorModel(&r, &Options{})
	if k, ok := KindOf(err); !ok || k != KindUnsupportedDtype {
		t.Fatalf("got err=%v, want KindUnsupportedDtype", err)
	}
}
