package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

// FieldPath is a dotted field path with bracketed indices. The zero value
// is an empty path ready to use.
type FieldPath struct {
	segments []string
}

// Push appends a named segment.
func (p *FieldPath) Push(name string) {
	p.segments = append(p.segments, name)
}

// PushIndex appends an index segment, rendered "[i]" without a dot.
func (p *FieldPath) PushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

// Pop removes the last segment. Popping an empty path does nothing.
func (p *FieldPath) Pop() {
	if len(p.segments) > 0 {
		p.segments = p.segments[:len(p.segments)-1]
	}
}

// Reset empties the path for reuse.
func (p *FieldPath) Reset() {
	p.segments = p.segments[:0]
}

// Depth returns the number of segments.
func (p *FieldPath) Depth() int {
	return len(p.segments)
}

// String renders the path.
func (p *FieldPath) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Field renders the path with name appended, leaving the path unchanged.
func (p *FieldPath) Field(name string) string {
	if len(p.segments) == 0 {
		return name
	}
	return p.String() + "." + name
}

const maxPooledDepth = 32

var fieldPathPool = sync.Pool{
	New: func() any {
		return &FieldPath{segments: make([]string, 0, 8)}
	},
}

// Get returns an empty FieldPath from the pool.
func Get() *FieldPath {
	p := fieldPathPool.Get().(*FieldPath)
	p.Reset()
	return p
}

// Put returns p to the pool. Oversized paths are dropped.
func Put(p *FieldPath) {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	fieldPathPool.Put(p)
}
