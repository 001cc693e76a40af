// Package archive is the recursive dispatch engine: given a schema
// descriptor and, in writing mode, a value (or, in reading mode, an
// optional existing target to decode into), it drives the wire, transport,
// value, and ref packages to encode or decode that value (spec.md §1, §6).
//
// Grounded on xmrserialize.py's Archive class and its module-level
// dump_field/load_field/dump_message/load_message/dump_container/
// load_container/dump_variant/load_variant functions, and on
// codec/codec.go's encodeFieldValue/decodeKnownField type switches, which
// play the same "one function per Kind" dispatch role this package's
// encodeValue/decodeWithExisting pair plays.
package archive

import (
	"context"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/xmrwire/codec/ref"
	"github.com/xmrwire/codec/schema"
	"github.com/xmrwire/codec/transport"
	"github.com/xmrwire/codec/value"
	"github.com/xmrwire/codec/wire"
)

// Archive binds a transport to a direction (encode or decode) for the
// duration of one pass. It implements schema.Dispatcher so that
// schema.CustomCodec hooks can recurse back into ordinary dispatch.
//
// Spec.md §5 requires that concurrent decoders on independent transports be
// safe; an Archive carries no state beyond its transport and direction, so
// that property holds as long as callers do not share a transport across
// goroutines (transport.Transport's own doc comment states that
// requirement).
type Archive struct {
	ctx     context.Context
	t       transport.Transport
	writing bool
}

// New returns an Archive that will encode (writing=true) or decode
// (writing=false) through t using ctx for cancellation of every transport
// operation it performs.
func New(ctx context.Context, t transport.Transport, writing bool) *Archive {
	return &Archive{ctx: ctx, t: t, writing: writing}
}

// Writing implements schema.Dispatcher.
func (a *Archive) Writing() bool { return a.writing }

// Context implements schema.Dispatcher.
func (a *Archive) Context() context.Context { return a.ctx }

// Transport returns the underlying transport, for custom hooks that need
// direct byte-level access beyond what the ordinary dispatch surface
// exposes.
func (a *Archive) Transport() transport.Transport { return a.t }

// Recurse implements schema.Dispatcher, handing a nested value back to
// ordinary dispatch on behalf of a schema.CustomCodec hook.
func (a *Archive) Recurse(val interface{}, d *schema.Descriptor, params []*schema.Descriptor) (interface{}, error) {
	if a.writing {
		if err := a.encodeValue(d, params, val); err != nil {
			return nil, err
		}
		return val, nil
	}
	return a.decodeWithExisting(d, params, val)
}

// EncodeMessage encodes msg according to its own descriptor.
func (a *Archive) EncodeMessage(msg *value.Message) error {
	if msg == nil || msg.Desc == nil {
		return fmt.Errorf("%w: message has no descriptor", ErrEncode)
	}
	return a.encodeValue(msg.Desc, nil, msg)
}

// DecodeMessage decodes a message of descriptor d. If target is non-nil its
// field slots are reused and overwritten in place (spec.md §9); otherwise a
// fresh *value.Message is allocated.
func (a *Archive) DecodeMessage(d *schema.Descriptor, target *value.Message) (*value.Message, error) {
	var existing interface{}
	if target != nil {
		existing = target
	}
	v, err := a.decodeWithExisting(d, nil, existing)
	if err != nil {
		return nil, err
	}
	msg, _ := v.(*value.Message)
	return msg, nil
}

// EncodeBlob encodes val (a []byte or value.BlobHolder) as descriptor d.
func (a *Archive) EncodeBlob(val interface{}, d *schema.Descriptor) error {
	return a.encodeValue(d, nil, val)
}

// DecodeBlob decodes a blob of descriptor d. target may be nil, a []byte,
// or a value.BlobHolder to fill in place.
func (a *Archive) DecodeBlob(d *schema.Descriptor, target interface{}) (interface{}, error) {
	return a.decodeWithExisting(d, nil, target)
}

// EncodeField encodes val as descriptor d with the given params (only
// meaningful when d is a container; see encodeContainer).
func (a *Archive) EncodeField(val interface{}, d *schema.Descriptor, params []*schema.Descriptor) error {
	return a.encodeValue(d, params, val)
}

// DecodeField decodes descriptor d with the given params into target.
func (a *Archive) DecodeField(d *schema.Descriptor, params []*schema.Descriptor, target interface{}) (interface{}, error) {
	return a.decodeWithExisting(d, params, target)
}

// PrepareContainer returns a slice of exactly size elements for decoding
// into: existing's overlapping prefix is preserved, it is grown or
// truncated to size otherwise. In writing mode it is returned unchanged.
//
// Grounded on xmrserialize.py's prepare_container/gen_elem_array helpers,
// which size a target container ahead of a decode pass that will address
// its elements by index.
func (a *Archive) PrepareContainer(existing []interface{}, size int) []interface{} {
	if a.writing {
		return existing
	}
	if len(existing) == size {
		return existing
	}
	out := make([]interface{}, size)
	copy(out, existing)
	return out
}

// encodeValue is the writing-mode half of the dispatch switch.
func (a *Archive) encodeValue(d *schema.Descriptor, params []*schema.Descriptor, val interface{}) error {
	if d == nil {
		return fmt.Errorf("%w: nil descriptor", ErrSchema)
	}
	if d.Custom != nil {
		_, err := d.Custom.Serialize(a, val)
		return err
	}
	switch d.Kind {
	case schema.KindVarint:
		return a.encodeVarint(val)
	case schema.KindInt:
		return a.encodeInt(d, val)
	case schema.KindBlob:
		return a.encodeBlob(d, val)
	case schema.KindText:
		return a.encodeText(val)
	case schema.KindContainer:
		return a.encodeContainer(d, params, val)
	case schema.KindVariant:
		return a.encodeVariant(d, val)
	case schema.KindMessage:
		return a.encodeMessage(d, val)
	default:
		return fmt.Errorf("%w: %v", ErrSchema, d.Kind)
	}
}

// decodeValue is the reading-mode half of the dispatch switch, addressing
// its result through target. It is what the field-iteration loops in
// message.go and container.go call for each slot.
func (a *Archive) decodeValue(d *schema.Descriptor, params []*schema.Descriptor, target ref.Ref) (interface{}, error) {
	var existing interface{}
	if target.Valid() {
		existing = target.Get()
	}
	v, err := a.decodeWithExisting(d, params, existing)
	if err != nil {
		return nil, err
	}
	if target.Valid() {
		target.Set(v)
	}
	return v, nil
}

// decodeWithExisting is decodeValue without the ref.Ref bookkeeping, for
// callers (the top-level Decode* methods, Recurse) that already hold the
// existing value directly rather than through a slot reference.
func (a *Archive) decodeWithExisting(d *schema.Descriptor, params []*schema.Descriptor, existing interface{}) (interface{}, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrSchema)
	}
	if d.Custom != nil {
		return d.Custom.Serialize(a, existing)
	}
	switch d.Kind {
	case schema.KindVarint:
		return a.decodeVarint()
	case schema.KindInt:
		return a.decodeInt(d)
	case schema.KindBlob:
		return a.decodeBlob(d, existing)
	case schema.KindText:
		return a.decodeText()
	case schema.KindContainer:
		return a.decodeContainer(d, params, existing)
	case schema.KindVariant:
		return a.decodeVariant(d, existing)
	case schema.KindMessage:
		return a.decodeMessage(d, existing)
	default:
		return nil, fmt.Errorf("%w: %v", ErrSchema, d.Kind)
	}
}

func (a *Archive) encodeVarint(val interface{}) error {
	v, ok := val.(*big.Int)
	if !ok || v == nil {
		return fmt.Errorf("%w: varint field requires a non-nil *big.Int, got %T", ErrEncode, val)
	}
	if err := wire.EncodeUvarint(a.ctx, a.t, v); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (a *Archive) decodeVarint() (interface{}, error) {
	v, err := wire.DecodeUvarint(a.ctx, a.t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

func (a *Archive) encodeInt(d *schema.Descriptor, val interface{}) error {
	v, err := toUint64(val)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if !wire.FitsWidth(v, d.Width) {
		return fmt.Errorf("%w: value %d does not fit in a %d-byte field", ErrEncode, v, d.Width)
	}
	if err := wire.EncodeFixed(a.ctx, a.t, v, d.Width); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (a *Archive) decodeInt(d *schema.Descriptor) (interface{}, error) {
	v, err := wire.DecodeFixed(a.ctx, a.t, d.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

func (a *Archive) encodeBlob(d *schema.Descriptor, val interface{}) error {
	data, err := blobBytes(val)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if d.Fixed && len(data) != d.Size {
		return fmt.Errorf("%w: blob has %d bytes, fixed size is %d", ErrEncode, len(data), d.Size)
	}
	if !d.Fixed {
		if err := encodeLength(a, len(data)); err != nil {
			return err
		}
	}
	if err := a.t.WriteAll(a.ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (a *Archive) decodeBlob(d *schema.Descriptor, existing interface{}) (interface{}, error) {
	n := d.Size
	if !d.Fixed {
		count, err := decodeLength(a, "blob")
		if err != nil {
			return nil, err
		}
		n = count
	}
	buf := make([]byte, n)
	if err := a.t.ReadExact(a.ctx, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return decodeBlobInto(existing, buf), nil
}

func (a *Archive) encodeText(val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: text field requires a string, got %T", ErrEncode, val)
	}
	data := []byte(s)
	if err := encodeLength(a, len(data)); err != nil {
		return err
	}
	if err := a.t.WriteAll(a.ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (a *Archive) decodeText() (interface{}, error) {
	count, err := decodeLength(a, "text")
	if err != nil {
		return nil, err
	}
	buf := make([]byte, count)
	if err := a.t.ReadExact(a.ctx, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("%w: text field is not valid UTF-8", ErrDecode)
	}
	return string(buf), nil
}

func blobBytes(val interface{}) ([]byte, error) {
	switch v := val.(type) {
	case []byte:
		return v, nil
	case value.BlobHolder:
		return v.BlobData(), nil
	case nil:
		return nil, fmt.Errorf("blob value is nil")
	default:
		return nil, fmt.Errorf("unsupported blob value type %T", val)
	}
}

func decodeBlobInto(existing interface{}, data []byte) interface{} {
	switch h := existing.(type) {
	case value.BlobHolder:
		h.SetBlobData(data)
		return h
	default:
		return data
	}
}

// toUint64 widens any of the integer or bool Go types a schema.KindInt field
// may legitimately carry into the raw bits written to the wire. Signed
// values are passed through their two's-complement bit pattern; SignExtend
// recovers the signed interpretation on the way back out.
func toUint64(val interface{}) (uint64, error) {
	switch v := val.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case int32:
		return uint64(uint32(v)), nil
	case int16:
		return uint64(uint16(v)), nil
	case int8:
		return uint64(uint8(v)), nil
	case int:
		return uint64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported int field value type %T", val)
	}
}

// SignExtend reinterprets the low 8*width bits of raw as a two's-complement
// signed value, for callers reading a Descriptor with Signed set.
func SignExtend(raw uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(raw<<shift) >> shift
}
