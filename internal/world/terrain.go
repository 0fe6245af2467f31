package world

// TerrainClass is the coarse classification of a tile by elevation.
type TerrainClass uint8

const (
	ClassOcean    TerrainClass = iota // [0, 10)
	ClassSea                          // [10, 20)
	ClassLake                         // Never produced by Classify; kept for exhaustive matching downstream.
	ClassLowLand                      // [20, 128)
	ClassPlateau                      // [128, 224)
	ClassMountain                     // [224, ...)
)

// AllClasses lists every TerrainClass in declaration order.
var AllClasses = [...]TerrainClass{
	ClassOcean,
	ClassSea,
	ClassLake,
	ClassLowLand,
	ClassPlateau,
	ClassMountain,
}

// Classify maps an elevation to its terrain class.
func Classify(elevation float64) TerrainClass {
	switch {
	case elevation < 10:
		return ClassOcean
	case elevation < 20:
		return ClassSea
	case elevation < 128:
		return ClassLowLand
	case elevation < 224:
		return ClassPlateau
	default:
		return ClassMountain
	}
}

// String returns a human-readable name for a terrain class.
func (c TerrainClass) String() string {
	switch c {
	case ClassOcean:
		return "Ocean"
	case ClassSea:
		return "Sea"
	case ClassLake:
		return "Lake"
	case ClassLowLand:
		return "LowLand"
	case ClassPlateau:
		return "Plateau"
	case ClassMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}
