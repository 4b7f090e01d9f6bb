// Package utils provides small helpers shared by the scraper, renderer and store that
// don't belong to a single feature, mostly conversions between puzzle solve times and
// their "M:SS" textual form.
package utils
