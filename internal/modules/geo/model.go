// README: Location value objects and estimation-method tags.
package geo

import "caravan/internal/types"

// Method reports which path produced an estimate so the presentation layer
// can disclose estimation quality to the end user. The distinction is about
// accuracy, not transport: coordinates supplied by the caller were resolved
// somewhere upstream and are reported as MethodProvider; MethodLocal is
// reserved for values synthesized by the deterministic approximation.
type Method string

const (
	MethodProvider Method = "external_provider"
	MethodLocal    Method = "local_approximation"
)

// Location is a free-text address with optional resolved coordinates.
// Coordinates are filled in lazily by the resolver and treated as immutable
// for the lifetime of a single optimization request.
type Location struct {
	AddressText string
	PostalCode  string
	Position    *types.Point
}

// Resolution is the outcome of resolving a Location. Resolution never fails:
// when no provider is configured or the provider errors, Point comes from the
// deterministic local approximation and Method/Warning say so.
type Resolution struct {
	Point   types.Point
	Method  Method
	Warning string
}
