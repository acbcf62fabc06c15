// FILE: lixenwraith/conlog/buffer.go
package conlog

// batch is the ordered list of entries awaiting a flush.
// Callers hold the owning pipeline's lock.
type batch struct {
	entries []Entry
}

func (b *batch) append(e Entry) {
	b.entries = append(b.entries, e)
}

// drain takes every pending entry, leaving the batch empty
func (b *batch) drain() []Entry {
	out := b.entries
	b.entries = nil
	return out
}

// restore puts a failed write back in front of anything appended since,
// so insertion order survives the retry
func (b *batch) restore(failed []Entry) {
	if len(failed) == 0 {
		return
	}
	merged := make([]Entry, 0, len(failed)+len(b.entries))
	merged = append(merged, failed...)
	merged = append(merged, b.entries...)
	b.entries = merged
}

func (b *batch) len() int {
	return len(b.entries)
}

func (b *batch) clear() {
	b.entries = nil
}
