// If you are AI: This file defines FLV protocol constants and tag types.

package flv

// FLV file signature
const FLVSignature = "FLV"

// FLV version
const FLVVersion = 1

// FLV header size
const FLVHeaderSize = 9

// Tag header size: type (1) + data size (3) + timestamp (3+1) + stream ID (3)
const TagHeaderSize = 11

// Previous tag size (4 bytes) before first tag
const FirstPreviousTagSize = 0

// Tag types
const (
	TagTypeAudio  = 8
	TagTypeVideo  = 9
	TagTypeScript = 18
)

// tagTypeFilter masks the reserved and filter bits off the tag type byte.
const tagTypeFilter = 0x1F

// TagTypeName returns a short name for an FLV tag type.
func TagTypeName(t byte) string {
	switch t {
	case TagTypeAudio:
		return "audio"
	case TagTypeVideo:
		return "video"
	case TagTypeScript:
		return "script"
	default:
		return "unknown"
	}
}
