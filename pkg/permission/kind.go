package permission

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -yaml -output kind.gen.go

// Kind identifies a single permission. The enumeration is closed and
// versioned: every Kind owns one bit index in [0, MaxBits), new kinds are
// only ever appended, and an index is never reused once assigned.
type Kind int

const (
	KindRead Kind = iota
	KindComment
	KindVote
	KindEdit
	KindDelete
	KindShare
	KindCreate
	KindDraft
	KindRestore
	KindApprove
	KindPublish
	KindArchive
	KindDownload
	KindExport
	KindInvite
	KindManageMembers
)

// MaxBits is the size of the bit universe a Set can address.
const MaxBits = 128

// Bit returns the bit index assigned to the kind.
func (i Kind) Bit() uint {
	return uint(i)
}
