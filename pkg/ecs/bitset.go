package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

const (
	bitsPerWord = 32
	wordShift   = 5 // log2(bitsPerWord)
	wordMask    = bitsPerWord - 1
)

// BitSet is a growable bit vector backed by 32-bit words. Words are only allocated when a bit in
// them is set. It is used for the component and system membership of entities and for the three
// sets of an Aspect.
//
// The zero value is an empty set ready to use.
type BitSet struct {
	words []uint32
}

// NewBitSet creates an empty bit set.
func NewBitSet() *BitSet {
	return &BitSet{words: nil}
}

func wordIndex(pos int) int {
	return pos >> wordShift
}

func bitMask(pos int) uint32 {
	return 1 << uint(pos&wordMask)
}

// Set sets the bit at pos, growing the backing words when needed. Negative positions are ignored.
func (b *BitSet) Set(pos int) {
	if pos < 0 {
		return
	}
	w := wordIndex(pos)
	if w >= len(b.words) {
		b.words = append(b.words, make([]uint32, w-len(b.words)+1)...)
	}
	b.words[w] |= bitMask(pos)
}

// Clear clears the bit at pos. Positions outside the allocated words are already clear.
func (b *BitSet) Clear(pos int) {
	if pos < 0 {
		return
	}
	w := wordIndex(pos)
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= bitMask(pos)
}

// Get reports whether the bit at pos is set. Positions outside the allocated words report false.
func (b *BitSet) Get(pos int) bool {
	if pos < 0 {
		return false
	}
	w := wordIndex(pos)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&bitMask(pos) != 0
}

// Reset drops every word. Afterwards IsEmpty reports true.
func (b *BitSet) Reset() {
	b.words = b.words[:0]
}

// Cardinality returns the number of set bits.
func (b *BitSet) Cardinality() int {
	sum := 0
	for _, word := range b.words {
		// Brian Kernighan: each iteration clears the lowest set bit.
		for w := word; w != 0; w &= w - 1 {
			sum++
		}
	}
	return sum
}

// Or sets every bit that is set in other. The receiver grows to other's length.
func (b *BitSet) Or(other *BitSet) *BitSet {
	if b == other {
		return b
	}
	commons := min(len(b.words), len(other.words))
	for i := range commons {
		b.words[i] |= other.words[i]
	}
	if commons < len(other.words) {
		b.words = append(b.words, other.words[commons:]...)
	}
	return b
}

// And clears every bit that is not set in other. The receiver is truncated to other's length when
// other is shorter.
func (b *BitSet) And(other *BitSet) *BitSet {
	if b == other {
		return b
	}
	commons := min(len(b.words), len(other.words))
	for i := range commons {
		b.words[i] &= other.words[i]
	}
	b.words = b.words[:commons]
	return b
}

// Xor flips every bit that is set in other. The receiver grows to other's length.
func (b *BitSet) Xor(other *BitSet) *BitSet {
	commons := min(len(b.words), len(other.words))
	if b == other {
		clear(b.words)
		return b
	}
	for i := range commons {
		b.words[i] ^= other.words[i]
	}
	if commons < len(other.words) {
		b.words = append(b.words, other.words[commons:]...)
	}
	return b
}

// NextSetBit returns the index of the first set bit at or after from, or -1 if there is none.
func (b *BitSet) NextSetBit(from int) int {
	if from < 0 {
		from = 0
	}
	w := wordIndex(from)
	if w >= len(b.words) {
		return -1
	}
	word := b.words[w] & (^uint32(0) << uint(from&wordMask))
	for {
		if word != 0 {
			return w<<wordShift + bits.TrailingZeros32(word)
		}
		w++
		if w >= len(b.words) {
			return -1
		}
		word = b.words[w]
	}
}

// PrevSetBit returns the index of the last set bit at or before from, or -1 if there is none. A
// position beyond the allocated words also returns -1.
func (b *BitSet) PrevSetBit(from int) int {
	if from < 0 {
		return -1
	}
	w := wordIndex(from)
	if w >= len(b.words) {
		return -1
	}
	word := b.words[w] & (^uint32(0) >> uint(wordMask-(from&wordMask)))
	for {
		if word != 0 {
			return w<<wordShift + wordMask - bits.LeadingZeros32(word)
		}
		w--
		if w < 0 {
			return -1
		}
		word = b.words[w]
	}
}

// Intersects reports whether any bit is set in both sets.
func (b *BitSet) Intersects(other *BitSet) bool {
	for i := min(len(b.words), len(other.words)) - 1; i >= 0; i-- {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set has no allocated words. A set whose words are all zero, e.g.
// after clearing every bit it had set, is not empty by this definition. Use Cardinality to test
// for zero set bits.
func (b *BitSet) IsEmpty() bool {
	return len(b.words) == 0
}

// Words returns the backing words. The slice must not be modified.
func (b *BitSet) Words() []uint32 {
	return b.words
}

// Clone returns an independent copy of the set.
func (b *BitSet) Clone() *BitSet {
	words := make([]uint32, len(b.words))
	copy(words, b.words)
	return &BitSet{words: words}
}

// String formats the backing words in base 10, e.g. "[5, 0, 256]".
func (b *BitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, word := range b.words {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(word), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}
