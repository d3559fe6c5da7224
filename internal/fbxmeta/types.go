package fbxmeta

// Properties holds numeric GlobalSettings/Properties70 values by name, as
// handed over by the file parser.
type Properties map[string]float64

// Property names read from the GlobalSettings section.
const (
	PropUpAxis                  = "UpAxis"
	PropUpAxisSign              = "UpAxisSign"
	PropFrontAxis               = "FrontAxis"
	PropFrontAxisSign           = "FrontAxisSign"
	PropCoordAxis               = "CoordAxis"
	PropCoordAxisSign           = "CoordAxisSign"
	PropUnitScaleFactor         = "UnitScaleFactor"
	PropOriginalUpAxis          = "OriginalUpAxis"
	PropOriginalUpAxisSign      = "OriginalUpAxisSign"
	PropOriginalUnitScaleFactor = "OriginalUnitScaleFactor"
)

// Metadata is the decoded axis and unit description of one document.
//
// UpAxis/FrontAxis/CoordAxis describe the convention the stored data uses.
// The Original* values describe the authoring tool's convention before any
// exporter-side conversion; they are informational only.
type Metadata struct {
	UpAxis, UpAxisSign       int
	FrontAxis, FrontAxisSign int
	CoordAxis, CoordAxisSign int
	UnitScaleFactor          float64

	// OriginalUpAxis is -1 when the exporter did not record it.
	OriginalUpAxis          int
	OriginalUpAxisSign      int
	OriginalUnitScaleFactor float64
}

// Default is the FBX default: Y up, Z front, X coord, all positive, centimetres.
var Default = Metadata{
	UpAxis: 1, UpAxisSign: 1,
	FrontAxis: 2, FrontAxisSign: 1,
	CoordAxis: 0, CoordAxisSign: 1,
	UnitScaleFactor: 1,

	OriginalUpAxis:          -1,
	OriginalUpAxisSign:      1,
	OriginalUnitScaleFactor: 1,
}
