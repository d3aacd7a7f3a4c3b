package types

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Every canonical window name parses back to itself.
func TestParseDateWindowCanonicalRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	windows := []interface{}{WindowAll, WindowWeek, WindowMonth, WindowThreeMonths, WindowSixMonths, WindowYear}

	properties.Property("canonical window names round-trip", prop.ForAll(
		func(w DateWindow) bool {
			got, ok := ParseDateWindow(string(w))
			return ok && got == w
		},
		gen.OneConstOf(windows...),
	))

	properties.TestingRun(t)
}
