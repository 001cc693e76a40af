// Package value holds the dynamic, schema-agnostic runtime representations
// the archive dispatch engine populates and reads: a Message is an
// attribute bag keyed by field name (grounded on
// dynamic.Message's map[int32]interface{} value bag, keyed here by name
// since schema.Field is named rather than numbered), and a Variant carries
// at most one active alternative.
package value

import "github.com/xmrwire/codec/schema"

// Message is the runtime value of a message-kind schema type: a set of
// named field values, addressed by name rather than position. Field order
// comes from the descriptor, not from the message.
// Fields not covered by the schema are simply never touched by the
// archive engine (spec.md §3, "Lifecycles").
type Message struct {
	// Desc is the descriptor this message was built from. encode-message
	// infers the wire type from it when no descriptor is supplied
	// explicitly (spec.md §6).
	Desc *schema.Descriptor

	// Values holds one entry per field name that has been set. It is
	// exported so tests can compare messages with go-cmp without needing
	// an Equal method or cmp.Exporter option.
	Values map[string]interface{}
}

// NewMessage returns an empty message of the given descriptor.
func NewMessage(d *schema.Descriptor) *Message {
	return &Message{Desc: d, Values: map[string]interface{}{}}
}

// Get returns the value stored under name, and whether it was present.
func (m *Message) Get(name string) (interface{}, bool) {
	v, ok := m.Values[name]
	return v, ok
}

// Set stores v under name.
func (m *Message) Set(name string, v interface{}) {
	if m.Values == nil {
		m.Values = map[string]interface{}{}
	}
	m.Values[name] = v
}

// Variant is the runtime value of a variant-kind schema type: at most one
// active alternative, named by Tag (spec.md §3, "a variant object carries
// at most one active alternative").
type Variant struct {
	Tag   string
	Value interface{}
}

// Active reports whether this variant has an alternative set.
func (v *Variant) Active() bool {
	return v != nil && v.Tag != ""
}

// BlobHolder is implemented by wrapper objects that expose their raw bytes
// under a known attribute, conventionally named "data" (spec.md §4.4).
// Encode reads the bytes via BlobData; decode into a supplied wrapper
// writes them via SetBlobData.
type BlobHolder interface {
	BlobData() []byte
	SetBlobData([]byte)
}

// Blob is the default BlobHolder implementation: a thin wrapper carrying
// raw bytes under the Data attribute.
type Blob struct {
	Data []byte
}

func (b *Blob) BlobData() []byte     { return b.Data }
func (b *Blob) SetBlobData(d []byte) { b.Data = d }
