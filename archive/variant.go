package archive

import (
	"fmt"
	"math/big"

	"github.com/xmrwire/codec/ref"
	"github.com/xmrwire/codec/schema"
	"github.com/xmrwire/codec/value"
	"github.com/xmrwire/codec/wire"
)

// findAlternativeByTag and findAlternativeByCode both return the first
// match, mirroring xmrserialize.py's find_fdef, which iterates FIELDS in
// order and returns on the first hit. schema.NewVariant already rejects
// duplicate codes at construction (DESIGN.md, Open Questions resolved #4),
// so "first match" only matters for hand-assembled descriptors that bypass
// that constructor.
func findAlternativeByTag(d *schema.Descriptor, tag string) *schema.Alternative {
	for i := range d.Alternatives {
		if d.Alternatives[i].Tag == tag {
			return &d.Alternatives[i]
		}
	}
	return nil
}

func findAlternativeByCode(d *schema.Descriptor, code uint64) *schema.Alternative {
	for i := range d.Alternatives {
		if d.Alternatives[i].Code == code {
			return &d.Alternatives[i]
		}
	}
	return nil
}

func (a *Archive) encodeVariant(d *schema.Descriptor, val interface{}) error {
	v, ok := val.(*value.Variant)
	if !ok || !v.Active() {
		return fmt.Errorf("%w: variant field requires an active *value.Variant", ErrEncode)
	}
	alt := findAlternativeByTag(d, v.Tag)
	if alt == nil {
		return fmt.Errorf("%w: %q is not a declared alternative of this variant", ErrEncode, v.Tag)
	}
	if err := wire.EncodeUvarint(a.ctx, a.t, new(big.Int).SetUint64(alt.Code)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := a.encodeValue(alt.Type, nil, v.Value); err != nil {
		return fmt.Errorf("variant %q: %w", v.Tag, err)
	}
	return nil
}

func (a *Archive) decodeVariant(d *schema.Descriptor, existing interface{}) (interface{}, error) {
	code, err := wire.DecodeUvarint(a.ctx, a.t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !code.IsUint64() {
		return nil, fmt.Errorf("%w: variant tag %s is out of range", ErrDecode, code)
	}
	alt := findAlternativeByCode(d, code.Uint64())
	if alt == nil {
		return nil, fmt.Errorf("%w: unknown variant tag %d", ErrDecode, code.Uint64())
	}

	result, ok := existing.(*value.Variant)
	if !ok || result == nil {
		result = &value.Variant{}
	}
	v, err := a.decodeValue(alt.Type, nil, ref.Ref{})
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", alt.Tag, err)
	}
	result.Tag = alt.Tag
	result.Value = v
	return result, nil
}
