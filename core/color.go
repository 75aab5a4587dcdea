package core

// RGBA stores explicit 8-bit color channels, decoupled from tcell
type RGBA struct {
	R, G, B, A uint8
}

// Predefined colors
var (
	RGBABlack = RGBA{0, 0, 0, 255}
	RGBAWhite = RGBA{255, 255, 255, 255}
	RGBARed   = RGBA{255, 92, 92, 255}
	RGBABlue  = RGBA{192, 192, 255, 255}
	RGBAGreen = RGBA{92, 255, 92, 255}
	RGBAGrey  = RGBA{128, 128, 128, 255}
)
