package photometry

import "math"

const (
	// ABZeroPoint is the AB offset for fluxes in erg/cm^2/sec/Hz.
	ABZeroPoint = 48.6

	// ABMagSigmaScale is d(mag)/d(ln flux), i.e. 2.5/ln(10).
	ABMagSigmaScale = 2.5 / math.Ln10

	// ABFluxSigmaScale is the inverse of ABMagSigmaScale.
	ABFluxSigmaScale = math.Ln10 / 2.5
)

// FluxToAbMagSigma converts a calibrated (AB) flux error to an AB magnitude
// error using first order error propagation:
//
//	magSigma = 2.5/ln(10) * |fluxSigma / flux|
//
// The result is Undefined when either argument is NaN or +/-Inf, when flux
// is zero, or when the ratio overflows.
func FluxToAbMagSigma(flux, fluxSigma float64) Value {
	if !isFinite(flux) || !isFinite(fluxSigma) || flux == 0 {
		return Undefined
	}
	return Defined(ABMagSigmaScale * math.Abs(fluxSigma/flux))
}

// FluxToAbMag converts a calibrated (AB) flux to an AB magnitude.
// Undefined for non-finite or non-positive flux.
func FluxToAbMag(flux float64) Value {
	if !isFinite(flux) || flux <= 0 {
		return Undefined
	}
	return Defined(-2.5*math.Log10(flux) - ABZeroPoint)
}

// AbMagToFlux converts an AB magnitude to a calibrated (AB) flux.
// Magnitudes bright or faint enough to overflow or underflow a double
// yield Undefined.
func AbMagToFlux(mag float64) Value {
	if !isFinite(mag) {
		return Undefined
	}
	flux := math.Pow(10, -0.4*(mag+ABZeroPoint))
	if flux == 0 {
		return Undefined
	}
	return Defined(flux)
}

// AbMagToFluxSigma converts an AB magnitude error to a calibrated (AB)
// flux error.
func AbMagToFluxSigma(mag, magSigma float64) Value {
	if !isFinite(magSigma) {
		return Undefined
	}
	flux, ok := AbMagToFlux(mag).Float64()
	if !ok {
		return Undefined
	}
	return Defined(ABFluxSigmaScale * math.Abs(magSigma) * flux)
}
