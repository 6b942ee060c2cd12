package codemap

// Resolver maps a label to its final machine-code address after linking.
//
// Resolvers must be monotonic over the labels recorded by a Builder: a label
// that was appended later must not resolve to a lower address.
type Resolver interface {
	Resolve(label Label) uint64
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(label Label) uint64

// Resolve calls f(label).
func (f ResolverFunc) Resolve(label Label) uint64 {
	return f(label)
}

// IdentityResolver treats labels as absolute addresses.
type IdentityResolver struct{}

// Resolve returns label unchanged.
func (IdentityResolver) Resolve(label Label) uint64 {
	return uint64(label)
}

// LinkedResolver treats labels as offsets from the address the code was
// linked at.
type LinkedResolver struct {
	Base uint64
}

// Resolve returns Base + label.
func (r LinkedResolver) Resolve(label Label) uint64 {
	return r.Base + uint64(label)
}
