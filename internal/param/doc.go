// Package param implements parameter sets: small, mutable mappings from a
// parameter name to a scalar value (number, string or bool) with structural
// equality and hashing.
//
// A Set is compared by content, never by identity. Key and Hash are computed
// from the current contents on every call, so a Set that is edited in place
// into the same state as another Set is interchangeable with it as a lookup
// key. Map builds on that to provide a content-addressed map keyed by Sets.
//
// Values are stored as primitive go-cty values, which gives numbers exact
// arbitrary-precision equality (1 and 1.0 are the same value) and a canonical
// string rendering for artifact naming.
package param
