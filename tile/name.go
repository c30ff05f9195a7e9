package tile

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// RootExt is the extension of root terrain tile files.
const RootExt = ".adt"

// ParseRootName parses a root tile file name of the form "<continent>_<x>_<y>.adt".
// The extension is matched case-insensitively. Auxiliary files sharing the
// stem ("<continent>_<x>_<y>_obj0.adt", "_tex0", "_lod") are rejected.
// Coordinates are not range-checked against the grid, but names whose
// packed index Y*64+X does not fit an Index are rejected.
func ParseRootName(name string) (continent string, tileID ID, ok bool) {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, RootExt) {
		return "", ID{}, false
	}

	parts := strings.Split(strings.TrimSuffix(name, ext), "_")
	if len(parts) != 3 || parts[0] == "" {
		return "", ID{}, false
	}

	x, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", ID{}, false
	}
	y, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return "", ID{}, false
	}

	if y*GridSide+x > math.MaxUint32 {
		return "", ID{}, false
	}

	return parts[0], ID{X: uint32(x), Y: uint32(y)}, true
}
