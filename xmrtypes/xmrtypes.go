// Package xmrtypes holds a handful of concrete Monero-style message
// descriptors used only by this codec's own tests (spec.md §1 treats the
// real schemas as an out-of-scope external collaborator; these exist solely
// to exercise archive end-to-end against the scenarios spec.md §8
// describes).
//
// Grounded on original_source/monerodata/tests/test_xmr_base.py's TxinGen
// and TxinToKey fixtures and on xmrserialize.py's ECPoint-style fixed
// 32-byte blob convention.
package xmrtypes

import "github.com/xmrwire/codec/schema"

// TxinGen is a single varint field, height. Scenario S1.
var TxinGen = schema.NewMessage(
	schema.Field{Name: "height", Type: schema.Varint()},
)

// ECPoint is a fixed 32-byte blob, the shape Monero uses for elliptic-curve
// points and key images alike. Scenario S2.
var ECPoint = schema.FixedBlob(32)

// TxinToKey is amount (varint), key_offsets (a variable container of
// varints), and k_image (a fixed 32-byte blob). Scenario S3.
var TxinToKey = schema.NewMessage(
	schema.Field{Name: "amount", Type: schema.Varint()},
	schema.Field{Name: "key_offsets", Type: schema.VarContainer(schema.Varint())},
	schema.Field{Name: "k_image", Type: ECPoint},
)
