// Package detect classifies meta documents into dialects.
package detect

import (
	"strings"

	"github.com/vvka-141/metakit/pkg/metakit"
)

type marker struct {
	dialect metakit.Dialect
	needles []string
}

// Content markers are checked in order; the first hit wins.
var contentMarkers = []marker{
	{metakit.DialectHandling, []string{"CHandlingDataMgr", "HandlingData"}},
	{metakit.DialectVehicles, []string{"CVehicleModelInfo__InitDataList", "InitDatas"}},
	{metakit.DialectCarcols, []string{"CVehicleModelInfoVarGlobal"}},
	{metakit.DialectCarvariations, []string{"CVehicleModelInfoVariation", "variationData"}},
	{metakit.DialectVehicleLayouts, []string{"CVehicleLayoutData", "vehicleLayouts", "VehicleLayouts", "CVehicleMetadataMgr"}},
}

// File name markers are matched against the lower-cased base name.
var nameMarkers = []marker{
	{metakit.DialectHandling, []string{"handling"}},
	{metakit.DialectCarcols, []string{"carcols", "modkit"}},
	{metakit.DialectCarvariations, []string{"carvariation"}},
	{metakit.DialectVehicleLayouts, []string{"vehiclelayout"}},
	{metakit.DialectVehicles, []string{"vehicles"}},
}

// Detect returns the dialect of a document. Content markers take precedence
// over the file name; DialectNone means the document is not recognized.
func Detect(content, fileName string) metakit.Dialect {
	if d := match(contentMarkers, content); d != metakit.DialectNone {
		return d
	}
	return match(nameMarkers, strings.ToLower(BaseName(fileName)))
}

// RefineContainer narrows the siren/kit container dialect for a group of
// documents: when every document carries a kits list and none carries a
// sirens list, the group is kit-only and reported as DialectModkits.
func RefineContainer(contents ...string) metakit.Dialect {
	if len(contents) == 0 {
		return metakit.DialectCarcols
	}
	for _, c := range contents {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "<sirens") || !strings.Contains(lower, "<kits") {
			return metakit.DialectCarcols
		}
	}
	return metakit.DialectModkits
}

// BaseName returns the last element of a path written with either slash style.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func match(markers []marker, s string) metakit.Dialect {
	if s == "" {
		return metakit.DialectNone
	}
	for _, m := range markers {
		for _, needle := range m.needles {
			if strings.Contains(s, needle) {
				return m.dialect
			}
		}
	}
	return metakit.DialectNone
}
