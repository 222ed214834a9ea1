package cdata

import "github.com/TomTonic/columnar"

// lifecycleState tracks which of the three modes described in spec.md
// §4.6 a Proxy is in.
type lifecycleState uint8

const (
	stateOwned lifecycleState = iota
	stateForeign
	stateTransferred
)

// Proxy owns exactly one Schema and one Array, following the three
// lifecycles in spec.md §4.6: create-owned, adopt-foreign, transfer-out.
// It generalizes the teacher's arrayBasedMultiMap — a single concrete
// implementation holding and mutating its own backing store on behalf of
// a narrower public interface — to a value that owns a *pair* of backing
// stores and keeps their release in lockstep: either both structs are
// live or neither is (spec.md §4.6's "never partially releases").
type Proxy struct {
	schema *Schema
	array  *Array
	state  lifecycleState
}

// NewOwned allocates a Schema/Array pair for format and name, owned by
// the returned Proxy.
func NewOwned(format, name string) *Proxy {
	schema := &Schema{Format: format, Name: name}
	array := &Array{NullCount: -1}
	schema.SetRelease(func(*Schema) {})
	array.SetRelease(func(*Array) {})
	return &Proxy{schema: schema, array: array, state: stateOwned}
}

// AdoptForeign wraps an externally produced Schema/Array pair; the Proxy
// takes over responsibility for invoking their release callbacks.
func AdoptForeign(schema *Schema, array *Array) *Proxy {
	if schema == nil || array == nil {
		columnar.ContractViolation("cdata.AdoptForeign: nil schema or array")
	}
	return &Proxy{schema: schema, array: array, state: stateForeign}
}

func (p *Proxy) checkLive() {
	if p.state == stateTransferred {
		columnar.ContractViolation("cdata.Proxy: operation on a transferred-out proxy")
	}
}

// TransferOut relinquishes both structs to the caller; every subsequent
// operation on p is forbidden (spec.md §4.6).
func (p *Proxy) TransferOut() (*Schema, *Array) {
	p.checkLive()
	s, a := p.schema, p.array
	p.schema, p.array = nil, nil
	p.state = stateTransferred
	return s, a
}

// Release invokes both structs' release callbacks. Either both fire or
// neither does: release runs unconditionally in schema-then-array order,
// and each callback is independently idempotent.
func (p *Proxy) Release() {
	if p.state == stateTransferred {
		return
	}
	p.schema.Release()
	p.array.Release()
}

// Length returns the array's logical length.
func (p *Proxy) Length() int64 {
	p.checkLive()
	return p.array.Length
}

// SetLength sets the array's logical length.
func (p *Proxy) SetLength(n int64) {
	p.checkLive()
	p.array.Length = n
}

// Offset returns the array's logical offset (elements, not bytes).
func (p *Proxy) Offset() int64 {
	p.checkLive()
	return p.array.Offset
}

// SetOffset sets the array's logical offset.
func (p *Proxy) SetOffset(o int64) {
	p.checkLive()
	p.array.Offset = o
}

// NullCount returns the cached null count, or -1 if unknown.
func (p *Proxy) NullCount() int64 {
	p.checkLive()
	return p.array.NullCount
}

// SetNullCount sets the cached null count.
func (p *Proxy) SetNullCount(n int64) {
	p.checkLive()
	p.array.NullCount = n
}

// Name returns the schema's name.
func (p *Proxy) Name() string {
	p.checkLive()
	return p.schema.Name
}

// SetName sets the schema's name.
func (p *Proxy) SetName(name string) {
	p.checkLive()
	p.schema.Name = name
}

// Metadata decodes the schema's metadata blob.
func (p *Proxy) Metadata() columnar.Metadata {
	p.checkLive()
	return columnar.DecodeMetadata(p.schema.MetadataRaw)
}

// SetMetadata encodes m into the schema's metadata blob.
func (p *Proxy) SetMetadata(m columnar.Metadata) {
	p.checkLive()
	p.schema.MetadataRaw = m.Encode()
}

// Format returns the schema's format string.
func (p *Proxy) Format() string {
	p.checkLive()
	return p.schema.Format
}

// AddChild appends a (child schema, child array) pair.
func (p *Proxy) AddChild(schema *Schema, array *Array) {
	p.checkLive()
	p.schema.Children = append(p.schema.Children, schema)
	p.array.Children = append(p.array.Children, array)
}

// RemoveChild removes the i'th child pair, releasing neither struct (the
// caller retains ownership once removed).
func (p *Proxy) RemoveChild(i int) error {
	p.checkLive()
	if i < 0 || i >= len(p.schema.Children) {
		return columnar.WrapOutOfRange(i, len(p.schema.Children))
	}
	p.schema.Children = append(p.schema.Children[:i], p.schema.Children[i+1:]...)
	p.array.Children = append(p.array.Children[:i], p.array.Children[i+1:]...)
	return nil
}

// ReplaceChild swaps the i'th child pair, returning the previous pair so
// the caller can release it.
func (p *Proxy) ReplaceChild(i int, schema *Schema, array *Array) (*Schema, *Array, error) {
	p.checkLive()
	if i < 0 || i >= len(p.schema.Children) {
		return nil, nil, columnar.WrapOutOfRange(i, len(p.schema.Children))
	}
	oldSchema, oldArray := p.schema.Children[i], p.array.Children[i]
	p.schema.Children[i] = schema
	p.array.Children[i] = array
	return oldSchema, oldArray, nil
}

// ChildCount returns the number of children.
func (p *Proxy) ChildCount() int {
	p.checkLive()
	return len(p.schema.Children)
}

// Child returns the i'th (child schema, child array) pair.
func (p *Proxy) Child(i int) (*Schema, *Array, error) {
	p.checkLive()
	if i < 0 || i >= len(p.schema.Children) {
		return nil, nil, columnar.WrapOutOfRange(i, len(p.schema.Children))
	}
	return p.schema.Children[i], p.array.Children[i], nil
}

// AttachDictionary attaches a dictionary (schema, array) pair, replacing
// any existing one.
func (p *Proxy) AttachDictionary(schema *Schema, array *Array) {
	p.checkLive()
	p.schema.Dictionary = schema
	p.array.Dictionary = array
}

// DetachDictionary removes and returns the current dictionary pair, or
// (nil, nil) if there is none.
func (p *Proxy) DetachDictionary() (*Schema, *Array) {
	p.checkLive()
	s, a := p.schema.Dictionary, p.array.Dictionary
	p.schema.Dictionary = nil
	p.array.Dictionary = nil
	return s, a
}

// HasDictionary reports whether a dictionary is attached.
func (p *Proxy) HasDictionary() bool {
	p.checkLive()
	return p.array.Dictionary != nil
}

// BufferAt returns the i'th raw buffer view, checked.
func (p *Proxy) BufferAt(i int) ([]byte, error) {
	p.checkLive()
	return p.array.BufferAt(i)
}

// DictionaryPair returns the dictionary (schema, array) pair without
// detaching it, or (nil, nil) if none is attached. Unlike
// DetachDictionary, p keeps ownership; used by consumers that only need
// to read the dictionary, such as array.Import.
func (p *Proxy) DictionaryPair() (*Schema, *Array) {
	p.checkLive()
	return p.schema.Dictionary, p.array.Dictionary
}

// BufferCount returns the number of raw buffer pointers.
func (p *Proxy) BufferCount() int {
	p.checkLive()
	return len(p.array.Buffers)
}

// PushBuffer appends a new raw buffer pointer.
func (p *Proxy) PushBuffer(buf []byte) {
	p.checkLive()
	p.array.Buffers = append(p.array.Buffers, buf)
}

// PopBuffer removes and returns the last raw buffer pointer.
func (p *Proxy) PopBuffer() []byte {
	p.checkLive()
	n := len(p.array.Buffers)
	if n == 0 {
		columnar.ContractViolation("cdata.Proxy.PopBuffer: no buffers to pop")
	}
	buf := p.array.Buffers[n-1]
	p.array.Buffers = p.array.Buffers[:n-1]
	return buf
}

// RepointBuffer re-points the i'th buffer at a different owned region,
// e.g. after the backing AlignedBuffer reallocates.
func (p *Proxy) RepointBuffer(i int, buf []byte) error {
	p.checkLive()
	if i < 0 || i >= len(p.array.Buffers) {
		return columnar.WrapOutOfRange(i, len(p.array.Buffers))
	}
	p.array.Buffers[i] = buf
	return nil
}

// UpdateBuffers refreshes every cached buffer view from current. It is
// idempotent and cheap when addresses have not changed (spec.md §4.6):
// buffers whose pointer and length are unchanged are left untouched.
func (p *Proxy) UpdateBuffers(current [][]byte) {
	p.checkLive()
	if len(current) != len(p.array.Buffers) {
		p.array.Buffers = append([][]byte(nil), current...)
		return
	}
	for i, buf := range current {
		if !sameBacking(p.array.Buffers[i], buf) {
			p.array.Buffers[i] = buf
		}
	}
}

func sameBacking(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
