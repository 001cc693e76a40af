package archive

import (
	"fmt"
	"math"
	"math/big"

	"github.com/xmrwire/codec/ref"
	"github.com/xmrwire/codec/schema"
	"github.com/xmrwire/codec/wire"
)

// resolveElem applies spec.md §3's container parameter rule: the first
// entry of params, if present, overrides the descriptor's declared element
// type for this occurrence; the remaining entries become that element's own
// params (meaningful again if the element is itself a container).
//
// Grounded on xmrserialize.py's dump_container/load_container:
//
//	elem_type = params[0] if params else None
//	if elem_type is None:
//	    elem_type = container_type.ELEM_TYPE
//	...
//	field_archiver(stream, elem, elem_type, params[1:] if params else None)
func resolveElem(d *schema.Descriptor, params []*schema.Descriptor) (*schema.Descriptor, []*schema.Descriptor) {
	elem := d.Elem
	var rest []*schema.Descriptor
	if len(params) > 0 {
		if params[0] != nil {
			elem = params[0]
		}
		rest = params[1:]
	}
	return elem, rest
}

func (a *Archive) encodeContainer(d *schema.Descriptor, params []*schema.Descriptor, val interface{}) error {
	elems, ok := val.([]interface{})
	if !ok {
		return fmt.Errorf("%w: container field requires []interface{}, got %T", ErrEncode, val)
	}
	if d.Fixed && len(elems) != d.Size {
		return fmt.Errorf("%w: container has %d elements, fixed size is %d", ErrEncode, len(elems), d.Size)
	}
	if !d.Fixed {
		if err := encodeLength(a, len(elems)); err != nil {
			return err
		}
	}
	elemDesc, childParams := resolveElem(d, params)
	for i, elem := range elems {
		if err := a.encodeValue(elemDesc, childParams, elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// decodeContainer follows xmrserialize.py's load_container precisely: when a
// target container is supplied, its length must equal the decoded count
// exactly (a mismatch is DecodeError) and elements are decoded into its
// existing slots in place; otherwise a fresh slice is built by appending.
// This is what resolves spec.md §9's open question about decoding into a
// non-empty target (DESIGN.md, Open Questions resolved #3).
func (a *Archive) decodeContainer(d *schema.Descriptor, params []*schema.Descriptor, existing interface{}) (interface{}, error) {
	count, err := a.decodeContainerLength(d)
	if err != nil {
		return nil, err
	}
	elemDesc, childParams := resolveElem(d, params)

	if existing != nil {
		prior, ok := existing.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: container target must be []interface{}, got %T", ErrDecode, existing)
		}
		if len(prior) != count {
			return nil, fmt.Errorf("%w: container target has %d elements, decoded length is %d", ErrDecode, len(prior), count)
		}
		for i := 0; i < count; i++ {
			if _, err := a.decodeValue(elemDesc, childParams, ref.Index(&prior, i)); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return prior, nil
	}

	elems := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		v, err := a.decodeValue(elemDesc, childParams, ref.Ref{})
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func (a *Archive) decodeContainerLength(d *schema.Descriptor) (int, error) {
	if d.Fixed {
		return d.Size, nil
	}
	return decodeLength(a, "container")
}

// encodeLength and decodeLength factor out the uvarint-length framing
// shared by variable containers, blobs, and text.
func encodeLength(a *Archive, n int) error {
	if err := wire.EncodeUvarint(a.ctx, a.t, big.NewInt(int64(n))); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func decodeLength(a *Archive, what string) (int, error) {
	n, err := wire.DecodeUvarint(a.ctx, a.t)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !n.IsUint64() || n.Uint64() > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s length %s is not representable", ErrDecode, what, n)
	}
	return int(n.Uint64()), nil
}
