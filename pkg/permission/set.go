package permission

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set is a bitmask over the Kind universe. It spans two 64-bit words: bit
// index i < 64 lives in low, i >= 64 lives in high. The split is deliberate
// and load-bearing: storage persists the two words as separate columns, and
// combining sets is plain word-wise bitwise arithmetic.
//
// Set is a pure value type. All operations return a new Set and never fail;
// a kind outside [0, MaxBits) is a programmer error and panics.
type Set struct {
	low  uint64
	high uint64
}

// Empty is the zero Set.
var Empty = Set{}

// NewSet builds a Set containing the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// FromWords reconstructs a Set from its two persisted words.
func FromWords(low, high uint64) Set {
	return Set{low: low, high: high}
}

// Words returns the two words for persistence, low first.
func (s Set) Words() (low, high uint64) {
	return s.low, s.high
}

func checkIndex(k Kind) uint {
	i := k.Bit()
	if k < 0 || i >= MaxBits {
		panic(fmt.Sprintf("permission: kind %d out of range [0, %d)", k, MaxBits))
	}
	return i
}

// Has reports whether the set contains the kind.
func (s Set) Has(k Kind) bool {
	i := checkIndex(k)
	if i < 64 {
		return s.low&(1<<i) != 0
	}
	return s.high&(1<<(i-64)) != 0
}

// Add returns the set with the kind's bit set.
func (s Set) Add(k Kind) Set {
	i := checkIndex(k)
	if i < 64 {
		s.low |= 1 << i
	} else {
		s.high |= 1 << (i - 64)
	}
	return s
}

// Remove returns the set with the kind's bit cleared.
func (s Set) Remove(k Kind) Set {
	i := checkIndex(k)
	if i < 64 {
		s.low &^= 1 << i
	} else {
		s.high &^= 1 << (i - 64)
	}
	return s
}

// Union returns the word-wise OR of both sets.
func (s Set) Union(other Set) Set {
	return Set{low: s.low | other.low, high: s.high | other.high}
}

// Subtract returns the set with every kind of other cleared (AND-NOT).
func (s Set) Subtract(other Set) Set {
	return Set{low: s.low &^ other.low, high: s.high &^ other.high}
}

// Intersect returns the word-wise AND of both sets.
func (s Set) Intersect(other Set) Set {
	return Set{low: s.low & other.low, high: s.high & other.high}
}

// ContainsAll reports whether other is a subset of s. A single AND+compare
// per word.
func (s Set) ContainsAll(other Set) bool {
	return s.low&other.low == other.low && s.high&other.high == other.high
}

// ContainsAny reports whether the sets share at least one kind.
func (s Set) ContainsAny(other Set) bool {
	return s.low&other.low != 0 || s.high&other.high != 0
}

// IsEmpty reports whether both words are zero.
func (s Set) IsEmpty() bool {
	return s.low == 0 && s.high == 0
}

// Equal reports word-wise equality.
func (s Set) Equal(other Set) bool {
	return s == other
}

// Len returns the number of kinds in the set.
func (s Set) Len() int {
	return bits.OnesCount64(s.low) + bits.OnesCount64(s.high)
}

// Kinds returns the kinds in the set ordered by bit index.
func (s Set) Kinds() []Kind {
	kinds := make([]Kind, 0, s.Len())
	for w, word := range [2]uint64{s.low, s.high} {
		base := uint(w) * 64
		for word != 0 {
			i := uint(bits.TrailingZeros64(word))
			kinds = append(kinds, Kind(base+i))
			word &^= 1 << i
		}
	}
	return kinds
}

// String renders the contained kinds as a comma-separated list.
func (s Set) String() string {
	if s.IsEmpty() {
		return "(none)"
	}
	names := make([]string, 0, s.Len())
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ",")
}

// ParseSet builds a Set from kind names, as produced by Set.String or found
// in policy documents.
func ParseSet(names []string) (Set, error) {
	var s Set
	for _, name := range names {
		k, err := KindString(strings.TrimSpace(name))
		if err != nil {
			return Empty, err
		}
		s = s.Add(k)
	}
	return s, nil
}

// All returns the set of every defined kind.
func All() Set {
	return NewSet(KindValues()...)
}
