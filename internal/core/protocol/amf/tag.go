// If you are AI: This file defines the semantic tags attached to annotated bytes.
// Tags only group bytes for rendering and carry no decoding semantics.

package amf

import (
	"errors"
	"fmt"
)

// ErrUnknownTag is returned when a tag name is not part of the palette.
var ErrUnknownTag = errors.New("unknown syntax tag")

// Tag classifies one annotated byte.
type Tag uint8

const (
	TagError Tag = iota
	TagFormatSelector
	TagNumberMarker
	TagNumber
	TagBoolMarker
	TagBoolTrue
	TagBoolFalse
	TagStringMarker
	TagStringLength
	TagString
	TagObjectMarker
	TagObjectKey
	TagObjectEnd
	TagTypedObjectMarker
	TagTypedObjectClass
	TagSwitchMarker
	TagNull
	TagUndefined
	TagFalse
	TagTrue
	TagInteger
	TagDouble
	TagArrayMarker
	TagArrayCount
	TagTraitHeader
	TagUnknownAMF0
	TagUnknownAMF3
	tagCount
)

var tagNames = [tagCount]string{
	TagError:             "error",
	TagFormatSelector:    "format_selector",
	TagNumberMarker:      "number_marker",
	TagNumber:            "number",
	TagBoolMarker:        "bool_marker",
	TagBoolTrue:          "bool_true",
	TagBoolFalse:         "bool_false",
	TagStringMarker:      "string_marker",
	TagStringLength:      "string_length",
	TagString:            "string",
	TagObjectMarker:      "object_marker",
	TagObjectKey:         "object_key",
	TagObjectEnd:         "object_end",
	TagTypedObjectMarker: "typed_object_marker",
	TagTypedObjectClass:  "typed_object_class",
	TagSwitchMarker:      "switch_marker",
	TagNull:              "null",
	TagUndefined:         "undefined",
	TagFalse:             "false",
	TagTrue:              "true",
	TagInteger:           "integer",
	TagDouble:            "double",
	TagArrayMarker:       "array_marker",
	TagArrayCount:        "array_count",
	TagTraitHeader:       "trait_header",
	TagUnknownAMF0:       "unknown_amf0",
	TagUnknownAMF3:       "unknown_amf3",
}

// String returns the palette name of the tag.
func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Tags returns every tag of the palette in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		tags = append(tags, t)
	}
	return tags
}

// ParseTag resolves a palette name to its tag.
func ParseTag(name string) (Tag, error) {
	for t := Tag(0); t < tagCount; t++ {
		if tagNames[t] == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}
