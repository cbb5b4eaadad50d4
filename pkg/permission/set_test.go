package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddHasRemove(t *testing.T) {
	s := NewSet(KindRead, KindEdit)

	assert.True(t, s.Has(KindRead))
	assert.True(t, s.Has(KindEdit))
	assert.False(t, s.Has(KindDelete))

	s = s.Remove(KindEdit)
	assert.False(t, s.Has(KindEdit))
	assert.True(t, s.Has(KindRead))

	// Removing a kind that is not present is a no-op.
	assert.Equal(t, s, s.Remove(KindPublish))
}

func TestSetUnionLaws(t *testing.T) {
	a := NewSet(KindRead, KindComment)
	b := NewSet(KindComment, KindShare)

	assert.Equal(t, a.Union(b), b.Union(a), "union is commutative")
	assert.Equal(t, a, a.Union(a), "union is idempotent")
	assert.Equal(t, a, a.Union(Empty), "empty is the identity")
}

func TestSetWordSplit(t *testing.T) {
	// Bits 63 and 64 straddle the word boundary; 127 is the last valid bit.
	// No defined kind is that high yet, but the set must address the full
	// 128-bit universe regardless of the enumeration's current size.
	low63 := Set{}.Add(Kind(63))
	high64 := Set{}.Add(Kind(64))
	high127 := Set{}.Add(Kind(127))

	lo, hi := low63.Words()
	assert.Equal(t, uint64(1)<<63, lo)
	assert.Zero(t, hi)

	lo, hi = high64.Words()
	assert.Zero(t, lo)
	assert.Equal(t, uint64(1), hi)

	lo, hi = high127.Words()
	assert.Zero(t, lo)
	assert.Equal(t, uint64(1)<<63, hi)

	both := low63.Union(high64)
	assert.True(t, both.Has(Kind(63)))
	assert.True(t, both.Has(Kind(64)))
	assert.False(t, both.Has(Kind(62)))
	assert.False(t, both.Has(Kind(65)))
	assert.Equal(t, []Kind{Kind(63), Kind(64)}, both.Kinds())
}

func TestSetOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Set{}.Add(Kind(128)) })
	assert.Panics(t, func() { Set{}.Has(Kind(-1)) })
}

func TestSetSubtract(t *testing.T) {
	s := NewSet(KindRead, KindComment, KindEdit)
	s = s.Subtract(NewSet(KindComment, KindDelete))

	assert.Equal(t, NewSet(KindRead, KindEdit), s)
}

func TestSetContainsAll(t *testing.T) {
	held := NewSet(KindRead, KindComment, KindShare)

	assert.True(t, held.ContainsAll(NewSet(KindRead, KindShare)))
	assert.True(t, held.ContainsAll(Empty), "empty set is a subset of everything")
	assert.False(t, held.ContainsAll(NewSet(KindRead, KindDelete)))
	assert.False(t, Empty.ContainsAll(NewSet(KindRead)))
}

func TestSetKindsOrderedByBit(t *testing.T) {
	s := NewSet(KindPublish, KindRead, KindEdit)

	assert.Equal(t, []Kind{KindRead, KindEdit, KindPublish}, s.Kinds())
}

func TestSetWordsRoundTrip(t *testing.T) {
	s := NewSet(KindRead, KindApprove).Add(Kind(100))
	lo, hi := s.Words()

	assert.Equal(t, s, FromWords(lo, hi))
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "(none)", Empty.String())
	assert.Equal(t, "read,edit", NewSet(KindEdit, KindRead).String())
}

func TestParseSet(t *testing.T) {
	s, err := ParseSet([]string{"read", " comment ", "managemembers"})
	require.NoError(t, err)
	assert.Equal(t, NewSet(KindRead, KindComment, KindManageMembers), s)

	_, err = ParseSet([]string{"fly"})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	k, err := KindString("approve")
	require.NoError(t, err)
	assert.Equal(t, KindApprove, k)

	assert.Equal(t, "managemembers", KindManageMembers.String())
	assert.True(t, KindRead.IsAKind())
	assert.False(t, Kind(99).IsAKind())
}
