package layout

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Leading is the fixed line-height multiplier applied to the font size.
const Leading = 1.2

// PtToMM converts a font size or length in points to millimetres.
func PtToMM(pt float64) float64 { return pt * PtToMm }

// MMToPt converts millimetres to points.
func MMToPt(mm float64) float64 { return mm * MmToPt }

// LineHeight returns the height in mm of one text line set at sizePt.
func LineHeight(sizePt float64) float64 { return PtToMM(sizePt) * Leading }
