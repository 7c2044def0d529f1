package ipp

import "fmt"

// Tag is the one-byte tag that introduces a group delimiter or an attribute value
// in the binary representation of an IPP message (RFC 8010, section 3.5).
type Tag byte

// Delimiter tags.
const (
	TagZero              Tag = 0x00
	TagOperationGroup    Tag = 0x01
	TagJobGroup          Tag = 0x02
	TagEnd               Tag = 0x03
	TagPrinterGroup      Tag = 0x04
	TagUnsupportedGroup  Tag = 0x05
	TagSubscriptionGroup Tag = 0x06
	TagEventGroup        Tag = 0x07
	TagResourceGroup     Tag = 0x08
	TagDocumentGroup     Tag = 0x09
	TagSystemGroup       Tag = 0x0a
)

// Value tags.
const (
	TagUnsupportedValue Tag = 0x10
	TagDefault          Tag = 0x11
	TagUnknown          Tag = 0x12
	TagNoValue          Tag = 0x13
	TagNotSettable      Tag = 0x15
	TagDeleteAttr       Tag = 0x16
	TagAdminDefine      Tag = 0x17
	TagInteger          Tag = 0x21
	TagBoolean          Tag = 0x22
	TagEnum             Tag = 0x23
	TagString           Tag = 0x30
	TagDateTime         Tag = 0x31
	TagResolution       Tag = 0x32
	TagRange            Tag = 0x33
	TagBeginCollection  Tag = 0x34
	TagTextLang         Tag = 0x35
	TagNameLang         Tag = 0x36
	TagEndCollection    Tag = 0x37
	TagText             Tag = 0x41
	TagName             Tag = 0x42
	TagKeyword          Tag = 0x44
	TagURI              Tag = 0x45
	TagURIScheme        Tag = 0x46
	TagCharset          Tag = 0x47
	TagLanguage         Tag = 0x48
	TagMimeType         Tag = 0x49
	TagMemberName       Tag = 0x4a
)

// IsDelimiter reports whether the tag separates groups rather than introducing
// an attribute value.
func (t Tag) IsDelimiter() bool {
	return t < 0x10
}

// IsGroup reports whether the tag opens an attribute group.
func (t Tag) IsGroup() bool {
	return t.IsDelimiter() && t != TagZero && t != TagEnd
}

// Type returns the value type carried by attributes with this tag. Tags this
// package does not understand report TypeInvalid.
func (t Tag) Type() Type {
	switch t {
	case TagInteger, TagEnum:
		return TypeInteger
	case TagBoolean:
		return TypeBoolean
	case TagUnsupportedValue, TagDefault, TagUnknown, TagNoValue,
		TagNotSettable, TagDeleteAttr, TagAdminDefine:
		return TypeVoid
	case TagText, TagName, TagKeyword, TagURI, TagURIScheme,
		TagCharset, TagLanguage, TagMimeType, TagMemberName:
		return TypeString
	case TagString:
		return TypeBinary
	case TagDateTime:
		return TypeDateTime
	case TagResolution:
		return TypeResolution
	case TagRange:
		return TypeRange
	case TagTextLang, TagNameLang:
		return TypeTextWithLang
	case TagBeginCollection:
		return TypeCollection
	}
	return TypeInvalid
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("0x%2.2x", byte(t))
}

var tagNames = map[Tag]string{
	TagZero:              "zero",
	TagOperationGroup:    "operation-attributes-tag",
	TagJobGroup:          "job-attributes-tag",
	TagEnd:               "end-of-attributes-tag",
	TagPrinterGroup:      "printer-attributes-tag",
	TagUnsupportedGroup:  "unsupported-attributes-tag",
	TagSubscriptionGroup: "subscription-attributes-tag",
	TagEventGroup:        "event-notification-attributes-tag",
	TagResourceGroup:     "resource-attributes-tag",
	TagDocumentGroup:     "document-attributes-tag",
	TagSystemGroup:       "system-attributes-tag",
	TagUnsupportedValue:  "unsupported",
	TagDefault:           "default",
	TagUnknown:           "unknown",
	TagNoValue:           "no-value",
	TagNotSettable:       "not-settable",
	TagDeleteAttr:        "delete-attribute",
	TagAdminDefine:       "admin-define",
	TagInteger:           "integer",
	TagBoolean:           "boolean",
	TagEnum:              "enum",
	TagString:            "octetString",
	TagDateTime:          "dateTime",
	TagResolution:        "resolution",
	TagRange:             "rangeOfInteger",
	TagBeginCollection:   "collection",
	TagTextLang:          "textWithLanguage",
	TagNameLang:          "nameWithLanguage",
	TagEndCollection:     "endCollection",
	TagText:              "textWithoutLanguage",
	TagName:              "nameWithoutLanguage",
	TagKeyword:           "keyword",
	TagURI:               "uri",
	TagURIScheme:         "uriScheme",
	TagCharset:           "charset",
	TagLanguage:          "naturalLanguage",
	TagMimeType:          "mimeMediaType",
	TagMemberName:        "memberAttrName",
}
