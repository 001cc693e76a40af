package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmrwire/codec/schema"
)

func TestNewVariantRejectsDuplicateCodes(t *testing.T) {
	_, err := schema.NewVariant(
		schema.Alternative{Tag: "a", Type: schema.Varint(), Code: 1},
		schema.Alternative{Tag: "b", Type: schema.Varint(), Code: 1},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateVariantCode)
}

func TestValidateCatchesHandAssembledDuplicateCodes(t *testing.T) {
	// Assembled by hand (bypassing NewVariant) so Validate must catch it.
	d := &schema.Descriptor{
		Kind: schema.KindVariant,
		Alternatives: []schema.Alternative{
			{Tag: "a", Type: schema.Varint(), Code: 3},
			{Tag: "b", Type: schema.Varint(), Code: 3},
		},
	}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateVariantCode)
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	d := &schema.Descriptor{Kind: schema.Kind(99)}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownKind)
}

func TestValidateRecursesThroughContainersAndMessages(t *testing.T) {
	inner := schema.NewMessage(
		schema.Field{Name: "x", Type: schema.VarContainer(schema.Varint())},
	)
	outer := schema.NewMessage(
		schema.Field{Name: "nested", Type: inner},
	)
	assert.NoError(t, outer.Validate())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "varint", schema.KindVarint.String())
	assert.Equal(t, "message", schema.KindMessage.String())
	assert.Contains(t, schema.Kind(42).String(), "Kind(42)")
}

func TestConstructors(t *testing.T) {
	b := schema.FixedBlob(32)
	assert.Equal(t, schema.KindBlob, b.Kind)
	assert.True(t, b.Fixed)
	assert.Equal(t, 32, b.Size)

	vb := schema.VarBlob()
	assert.False(t, vb.Fixed)

	c := schema.FixedContainer(schema.Varint(), 4)
	assert.True(t, c.Fixed)
	assert.Equal(t, 4, c.Size)
	assert.Equal(t, schema.KindVarint, c.Elem.Kind)

	i := schema.Int(2, true)
	assert.Equal(t, 2, i.Width)
	assert.True(t, i.Signed)
}
