// Package ref implements the element-reference abstraction: a uniform,
// tagged handle naming "the slot to fill" during decode, so the archive
// dispatch engine can write results in place instead of requiring a
// general first-class mutable-reference facility (spec.md §9, "Ownership
// of targets"). A Ref names either a named field on a Message or an index
// in a container slice.
//
// Grounded on xmrserialize.py's ElemRefObj/ElemRefArr tuples and their
// get_elem/set_elem helpers.
package ref

import "github.com/xmrwire/codec/value"

// Ref is a tagged reference to a mutable slot. The zero value is not
// valid; construct one with Field or Index.
type Ref struct {
	msg   *value.Message
	name  string
	slice *[]interface{}
	index int
	valid bool
}

// Field returns a reference to the named field of msg.
func Field(msg *value.Message, name string) Ref {
	return Ref{msg: msg, name: name, valid: true}
}

// Index returns a reference to the i'th element of *slice. The slice is
// grown with nils if necessary when Set is called with an index beyond its
// current length.
func Index(slice *[]interface{}, i int) Ref {
	return Ref{slice: slice, index: i, valid: true}
}

// Valid reports whether r names a real slot.
func (r Ref) Valid() bool {
	return r.valid
}

// Get reads the slot's current value. It returns nil if r is invalid or
// the slot has never been set.
func (r Ref) Get() interface{} {
	if !r.valid {
		return nil
	}
	if r.slice != nil {
		s := *r.slice
		if r.index < 0 || r.index >= len(s) {
			return nil
		}
		return s[r.index]
	}
	v, _ := r.msg.Get(r.name)
	return v
}

// Set writes val into the slot named by r.
func (r Ref) Set(val interface{}) {
	if !r.valid {
		return
	}
	if r.slice != nil {
		s := *r.slice
		for r.index >= len(s) {
			s = append(s, nil)
		}
		s[r.index] = val
		*r.slice = s
		return
	}
	r.msg.Set(r.name, val)
}
