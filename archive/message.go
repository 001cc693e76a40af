package archive

import (
	"fmt"

	"github.com/xmrwire/codec/ref"
	"github.com/xmrwire/codec/schema"
	"github.com/xmrwire/codec/value"
)

// encodeMessage walks d.Fields in declared order. A field absent from the
// message's attribute bag is EncodeError (spec.md §4.8); fields the message
// carries beyond what the descriptor declares are never consulted, matching
// xmrserialize.py's dump_message, which only ever iterates MessageType.FIELDS.
func (a *Archive) encodeMessage(d *schema.Descriptor, val interface{}) error {
	msg, ok := val.(*value.Message)
	if !ok || msg == nil {
		return fmt.Errorf("%w: message field requires a non-nil *value.Message, got %T", ErrEncode, val)
	}
	for _, f := range d.Fields {
		v, present := msg.Get(f.Name)
		if !present {
			return fmt.Errorf("%w: missing required field %q", ErrEncode, f.Name)
		}
		if err := a.encodeValue(f.Type, f.Params, v); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// decodeMessage reuses existing, if it is already a *value.Message, as the
// target to populate field by field; otherwise it allocates a fresh one.
// Reusing lets a caller's preallocated nested message (reached through a
// container or another message's field) keep its identity across decode,
// matching xmrserialize.py's load_message, which only allocates via
// msg_type() when no msg object was already supplied.
func (a *Archive) decodeMessage(d *schema.Descriptor, existing interface{}) (interface{}, error) {
	msg, ok := existing.(*value.Message)
	if !ok || msg == nil {
		msg = value.NewMessage(d)
	}
	for _, f := range d.Fields {
		if _, err := a.decodeValue(f.Type, f.Params, ref.Field(msg, f.Name)); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return msg, nil
}
