package api

import (
	"errors"
)

// AttributeMap is an ordered bag (keys are never removed, values may be
// overwritten) of metadata attached to a
// coordinate or data variable. Adapted from the teacher's
// netcdf/util.OrderedMap: same keys-plus-values-plus-insertion-order
// shape, generalized from NetCDF attribute values (which can be scalars
// or typed slices) to the fixed set of attribute kinds a GRIB1 variable
// actually carries (strings, floats, ints).
type AttributeMap struct {
	keys   []string
	values map[string]any
}

var ErrDuplicateAttribute = errors.New("duplicate attribute")

// NewAttributeMap returns an empty, ordered attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{values: map[string]any{}}
}

// Set adds or overwrites an attribute. Overwriting an existing key keeps
// its original position in Keys().
func (am *AttributeMap) Set(name string, val any) *AttributeMap {
	if _, has := am.values[name]; !has {
		am.keys = append(am.keys, name)
	}
	am.values[name] = val
	return am
}

// Get returns the value for key and whether it was present.
func (am *AttributeMap) Get(key string) (val any, has bool) {
	val, has = am.values[key]
	return
}

// Keys returns the attribute names in insertion order.
func (am *AttributeMap) Keys() []string {
	return am.keys
}

// Clone returns a shallow, independent copy.
func (am *AttributeMap) Clone() *AttributeMap {
	out := NewAttributeMap()
	out.keys = append([]string{}, am.keys...)
	for k, v := range am.values {
		out.values[k] = v
	}
	return out
}
