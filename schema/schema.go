// Package schema implements the closed, tagged-union descriptor model the
// archive dispatch engine is parameterized by: varint, fixed int, blob,
// text, container, variant, and message descriptors, each carrying exactly
// the attributes its wire encoding needs (spec.md §3).
//
// Descriptors are plain data. A closed Kind enum with per-kind fields on a
// single Descriptor struct is preferred here over one interface type per
// kind (spec.md §9, "Descriptor polymorphism") so that the dispatch engine
// can switch on Kind directly instead of doing open-ended dynamic dispatch
// by Go type.
package schema

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies which wire-format rule a Descriptor follows.
type Kind int

const (
	KindVarint Kind = iota
	KindInt
	KindBlob
	KindText
	KindContainer
	KindVariant
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindVarint:
		return "varint"
	case KindInt:
		return "int"
	case KindBlob:
		return "blob"
	case KindText:
		return "text"
	case KindContainer:
		return "container"
	case KindVariant:
		return "variant"
	case KindMessage:
		return "message"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrDuplicateVariantCode is returned by NewVariant when two alternatives
// declare the same variant code. spec.md §4.7 describes a lenient "first
// declared wins" tie-break for this case; spec.md §9's design notes
// supersede that by requiring schema construction to reject the duplicate
// outright (see DESIGN.md, Open Questions #4).
var ErrDuplicateVariantCode = errors.New("schema: duplicate variant code")

// ErrUnknownKind is returned when a Descriptor's Kind does not match any of
// the closed set of Kind constants.
var ErrUnknownKind = errors.New("schema: unknown descriptor kind")

// Descriptor describes one schema type. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Descriptor struct {
	Kind Kind

	// Int: width in bytes (1, 2, 4, or 8) and whether the caller should
	// interpret the raw bits as signed. Width is the number of bytes on the
	// wire; signedness does not alter the wire form (spec.md §4.3).
	Width  int
	Signed bool

	// Blob / Container: Fixed indicates no length prefix on the wire and a
	// statically known byte count / element count, carried in Size.
	Fixed bool
	Size  int

	// Container: the element type, overridable per-occurrence via the
	// first entry of a Field's Params (spec.md §3 "Params propagate...").
	Elem *Descriptor

	// Variant: the ordered list of tagged alternatives.
	Alternatives []Alternative

	// Message: the ordered list of named fields.
	Fields []Field

	// Custom, if non-nil, fully replaces default encode/decode behavior
	// for this descriptor (spec.md §4.9 "Custom hooks").
	Custom CustomCodec
}

// Alternative is one tagged option of a Variant descriptor. Code is the
// small unsigned integer that identifies this alternative on the wire; it
// must be unique within the variant (enforced by NewVariant).
type Alternative struct {
	Tag  string
	Type *Descriptor
	Code uint64
}

// Field is one named, ordered member of a Message descriptor.
type Field struct {
	Name   string
	Type   *Descriptor
	Params []*Descriptor
}

// Varint returns a variable-length unsigned integer descriptor.
func Varint() *Descriptor {
	return &Descriptor{Kind: KindVarint}
}

// Int returns a fixed-width integer descriptor. width must be 1, 2, 4, or 8.
func Int(width int, signed bool) *Descriptor {
	return &Descriptor{Kind: KindInt, Width: width, Signed: signed}
}

// FixedBlob returns a descriptor for a blob of exactly size bytes, with no
// length prefix on the wire.
func FixedBlob(size int) *Descriptor {
	return &Descriptor{Kind: KindBlob, Fixed: true, Size: size}
}

// VarBlob returns a descriptor for a length-prefixed blob of arbitrary
// size.
func VarBlob() *Descriptor {
	return &Descriptor{Kind: KindBlob, Fixed: false}
}

// Text returns a length-prefixed UTF-8 text descriptor.
func Text() *Descriptor {
	return &Descriptor{Kind: KindText}
}

// FixedContainer returns a descriptor for a container of exactly size
// elements of type elem, with no length prefix on the wire.
func FixedContainer(elem *Descriptor, size int) *Descriptor {
	return &Descriptor{Kind: KindContainer, Fixed: true, Size: size, Elem: elem}
}

// VarContainer returns a descriptor for a length-prefixed container of
// arbitrary length, homogeneous in elem.
func VarContainer(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindContainer, Fixed: false, Elem: elem}
}

// NewVariant returns a tagged-union descriptor over the given alternatives.
// It fails with ErrDuplicateVariantCode if two alternatives share a code.
func NewVariant(alts ...Alternative) (*Descriptor, error) {
	seen := make(map[uint64]string, len(alts))
	for _, a := range alts {
		if prior, ok := seen[a.Code]; ok {
			return nil, fmt.Errorf("%w: code %d used by both %q and %q", ErrDuplicateVariantCode, a.Code, prior, a.Tag)
		}
		seen[a.Code] = a.Tag
	}
	return &Descriptor{Kind: KindVariant, Alternatives: alts}, nil
}

// NewMessage returns a message descriptor over the given ordered fields.
func NewMessage(fields ...Field) *Descriptor {
	return &Descriptor{Kind: KindMessage, Fields: fields}
}

// WithCustom attaches a custom serialize hook to d, returning d for
// chaining. The hook fully replaces default encode/decode behavior.
func (d *Descriptor) WithCustom(c CustomCodec) *Descriptor {
	d.Custom = c
	return d
}

// Validate checks internal consistency beyond what construction already
// guarantees: variant code uniqueness (redundant for variants built via
// NewVariant, but meaningful for descriptors assembled by hand) and that
// every reachable Kind is one of the closed set. It recurses into
// Container/Variant/Message children.
func (d *Descriptor) Validate() error {
	return d.validate(make(map[*Descriptor]bool))
}

func (d *Descriptor) validate(seen map[*Descriptor]bool) error {
	if d == nil || seen[d] {
		return nil
	}
	seen[d] = true

	switch d.Kind {
	case KindVarint, KindInt, KindBlob, KindText:
		return nil
	case KindContainer:
		return d.Elem.validate(seen)
	case KindVariant:
		codes := make(map[uint64]string, len(d.Alternatives))
		for _, a := range d.Alternatives {
			if prior, ok := codes[a.Code]; ok {
				return fmt.Errorf("%w: code %d used by both %q and %q", ErrDuplicateVariantCode, a.Code, prior, a.Tag)
			}
			codes[a.Code] = a.Tag
			if err := a.Type.validate(seen); err != nil {
				return err
			}
		}
		return nil
	case KindMessage:
		for _, f := range d.Fields {
			if err := f.Type.validate(seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownKind, d.Kind)
	}
}

// Dispatcher is the minimal surface a CustomCodec needs to cooperate with
// the archive engine: whether the current pass is writing or reading, the
// pass's context, and a way to hand a nested value back to the ordinary
// dispatch logic. It is implemented by *archive.Archive; defined here
// (rather than imported from package archive) so that schema need not
// depend on archive, avoiding an import cycle.
type Dispatcher interface {
	Writing() bool
	Context() context.Context

	// Recurse dispatches val through the ordinary engine for the nested
	// descriptor d and params, exactly as an ordinary field would be,
	// and returns the resulting (possibly decoded) value. In write mode
	// val is encoded; in read mode val is the existing target to decode
	// into (nil for a freshly built value).
	Recurse(val interface{}, d *Descriptor, params []*Descriptor) (interface{}, error)
}

// CustomCodec lets a Descriptor override default encode/decode behavior
// entirely (spec.md §4.9 "Custom hooks"), for types with irregular framing
// or cross-field invariants the generic dispatch can't express.
type CustomCodec interface {
	// Serialize is called in both writing and reading mode. In writing
	// mode val is the value to encode; the return value is ignored. In
	// reading mode val is the existing target (or nil); Serialize must
	// return the decoded value.
	Serialize(d Dispatcher, val interface{}) (interface{}, error)
}
