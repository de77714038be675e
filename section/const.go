package section

const (
	HeaderSize   = 0x20 // fixed file header size in bytes
	EnvelopeSize = 0x10 // tag, payload size and 8 reserved bytes
	Alignment    = 0x10 // sections end on a 16-byte file offset boundary

	// DefaultLabelGroups is the bucket count used by new label tables.
	DefaultLabelGroups = 101

	labelGroupSize    = 8 // label count, offset
	labelIndexSize    = 4
	globalIDEntrySize = 8 // index, id
	offsetSize        = 4
	countSize         = 4
)

// HeaderMagic is the fixed 8-byte magic at the start of every file.
var HeaderMagic = [8]byte{'M', 's', 'g', 'S', 't', 'd', 'B', 'n'}

// PaddingSize returns the number of pad bytes needed after offset to reach the
// next Alignment boundary.
func PaddingSize(offset int64) int {
	rem := int(offset % Alignment)
	if rem == 0 {
		return 0
	}

	return Alignment - rem
}

// AlignedSize rounds size up to a multiple of Alignment.
func AlignedSize(size int) int {
	return size + PaddingSize(int64(size))
}
