package udf

import (
	"sort"
	"strings"

	"github.com/trimble-oss/trcphotometry/pkg/photometry"
)

var FluxToAbMagSigma = &Descriptor{
	Name:        "fluxToAbMagSigma",
	Description: "Converts a calibrated (AB) flux error to an AB magnitude error.",
	Arity:       2,
	MaybeNull:   true,
	Decimals:    FullPrecisionDecimals,
	Eval: func(args []float64) photometry.Value {
		return photometry.FluxToAbMagSigma(args[0], args[1])
	},
}

var FluxToAbMag = &Descriptor{
	Name:        "fluxToAbMag",
	Description: "Converts a calibrated (AB) flux to an AB magnitude.",
	Arity:       1,
	MaybeNull:   true,
	Decimals:    FullPrecisionDecimals,
	Eval: func(args []float64) photometry.Value {
		return photometry.FluxToAbMag(args[0])
	},
}

var AbMagToFlux = &Descriptor{
	Name:        "abMagToFlux",
	Description: "Converts an AB magnitude to a calibrated (AB) flux.",
	Arity:       1,
	MaybeNull:   true,
	Decimals:    FullPrecisionDecimals,
	Eval: func(args []float64) photometry.Value {
		return photometry.AbMagToFlux(args[0])
	},
}

var AbMagToFluxSigma = &Descriptor{
	Name:        "abMagToFluxSigma",
	Description: "Converts an AB magnitude error to a calibrated (AB) flux error.",
	Arity:       2,
	MaybeNull:   true,
	Decimals:    FullPrecisionDecimals,
	Eval: func(args []float64) photometry.Value {
		return photometry.AbMagToFluxSigma(args[0], args[1])
	},
}

var registry = map[string]*Descriptor{}

func init() {
	for _, d := range []*Descriptor{FluxToAbMagSigma, FluxToAbMag, AbMagToFlux, AbMagToFluxSigma} {
		registry[strings.ToLower(d.Name)] = d
	}
}

// Lookup finds a descriptor by name. Like SQL function names, the match
// ignores case.
func Lookup(name string) (*Descriptor, bool) {
	d, ok := registry[strings.ToLower(name)]
	return d, ok
}

// Descriptors returns every registered function sorted by name.
func Descriptors() []*Descriptor {
	descriptors := make([]*Descriptor, 0, len(registry))
	for _, d := range registry {
		descriptors = append(descriptors, d)
	}
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Name < descriptors[j].Name })
	return descriptors
}
