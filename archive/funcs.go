package archive

import (
	"context"

	"github.com/xmrwire/codec/schema"
	"github.com/xmrwire/codec/transport"
	"github.com/xmrwire/codec/value"
)

// This file exposes the package-level convenience functions spec.md §6
// describes alongside the Archive type itself: one-shot encode/decode
// entry points that construct a throwaway Archive around a transport,
// for callers that do not need to reuse the direction/context pairing
// across several calls.

// EncodeMessage encodes msg over t.
func EncodeMessage(ctx context.Context, t transport.Transport, msg *value.Message) error {
	return New(ctx, t, true).EncodeMessage(msg)
}

// DecodeMessage decodes a message of descriptor d from t, reusing target's
// field slots in place if target is non-nil.
func DecodeMessage(ctx context.Context, t transport.Transport, d *schema.Descriptor, target *value.Message) (*value.Message, error) {
	return New(ctx, t, false).DecodeMessage(d, target)
}

// EncodeBlob encodes val as descriptor d over t.
func EncodeBlob(ctx context.Context, t transport.Transport, val interface{}, d *schema.Descriptor) error {
	return New(ctx, t, true).EncodeBlob(val, d)
}

// DecodeBlob decodes a blob of descriptor d from t into target.
func DecodeBlob(ctx context.Context, t transport.Transport, d *schema.Descriptor, target interface{}) (interface{}, error) {
	return New(ctx, t, false).DecodeBlob(d, target)
}

// EncodeField encodes val as descriptor d with params over t.
func EncodeField(ctx context.Context, t transport.Transport, val interface{}, d *schema.Descriptor, params []*schema.Descriptor) error {
	return New(ctx, t, true).EncodeField(val, d, params)
}

// DecodeField decodes descriptor d with params from t into target.
func DecodeField(ctx context.Context, t transport.Transport, d *schema.Descriptor, params []*schema.Descriptor, target interface{}) (interface{}, error) {
	return New(ctx, t, false).DecodeField(d, params, target)
}
