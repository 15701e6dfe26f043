// Package calculator implements the computations behind every calculator
// screen of the catalog.
//
// Input-based calculators take named numeric fields; component-based ones
// (unit, temperature and currency converters) take unit names as well and
// delegate to package units. Computation errors are reported with the
// sentinel errors of this package so that HTTP handlers can map them to
// status codes with errors.Is.
package calculator
