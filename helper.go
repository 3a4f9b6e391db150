package rasterpng

// SaveUniform writes an APNG file from rasters using the same delay for
// every frame, given in centiseconds (1/100 second).
//
// For 30 FPS, each frame lasts 1/30 second ≈ 3.33 centiseconds; with
// integer delays you might use 3 centiseconds per frame.
func SaveUniform(filePath string, rasters []Raster, delayCentiseconds uint16) error {
	return SaveAPNG(filePath, rasters, AnimOptions{
		DelayNum: []uint16{delayCentiseconds},
		DelayDen: []uint16{100},
	})
}

// UniformAPNGBytes encodes rasters into an APNG byte stream using the same
// delay for every frame. See SaveUniform for the delay convention.
func UniformAPNGBytes(rasters []Raster, delayCentiseconds uint16) ([]byte, error) {
	return APNGBytes(rasters, AnimOptions{
		DelayNum: []uint16{delayCentiseconds},
		DelayDen: []uint16{100},
	})
}
