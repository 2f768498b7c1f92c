// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
	"github.com/iwvelando/solar-calculator/pkg/projection"
)

// FindYear finds a yearly projection point by its 1-based year index.
// Returns a pointer to the point if found, nil otherwise.
func FindYear(points []projection.YearlyPoint, year int) *projection.YearlyPoint {
	for i := range points {
		if points[i].YearIndex == year {
			return &points[i]
		}
	}
	return nil
}

// AssertClose fails the test when got and expected differ by more than a cent.
func AssertClose(t testing.TB, name string, got, expected float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, expected, constants.CurrencyTolerance) {
		t.Errorf("%s = %.4f, expected %.4f", name, got, expected)
	}
}
