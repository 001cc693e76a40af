package archive

import "errors"

// ErrDecode wraps every malformed-input condition spec.md §7 classifies as
// *DecodeError*: invalid UTF-8, an unknown variant tag, a container size
// mismatch against a supplied target, or a value that does not fit the
// shape the schema expects.
var ErrDecode = errors.New("archive: decode error")

// ErrEncode wraps every schema-precondition violation spec.md §7 classifies
// as *EncodeError*: a missing required field, a variant with no active
// alternative, a blob whose length disagrees with a fixed size, or a value
// that does not fit its declared width.
var ErrEncode = errors.New("archive: encode error")

// ErrSchema wraps the conditions spec.md §7 classifies as *SchemaError*:
// an internally inconsistent descriptor, most commonly an unrecognized
// Kind reaching the dispatch switch.
var ErrSchema = errors.New("archive: schema error")
