// Package photometry provides conversions between calibrated (AB) fluxes and
// AB magnitudes, and between their uncertainties.
//
// Every function is pure and safe for concurrent use. Invalid input does not
// produce an error: it produces Undefined, which SQL hosts map to NULL.
package photometry
