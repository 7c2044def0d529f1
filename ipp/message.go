package ipp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Version is the IPP protocol version carried in the first two bytes of a
// message.
type Version struct {
	Major, Minor byte
}

var (
	Version11 = Version{Major: 1, Minor: 1}
	Version20 = Version{Major: 2, Minor: 0}
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Message is a decoded IPP request or response. Code holds the operation-id
// of a request or the status-code of a response.
type Message struct {
	Version   Version
	Code      uint16
	RequestID uint32
	Groups    []Group

	// Data is the document payload that follows end-of-attributes-tag.
	Data []byte
}

// Op returns Code as an operation.
func (m *Message) Op() Op { return Op(m.Code) }

// Status returns Code as a response status.
func (m *Message) Status() Status { return Status(m.Code) }

// Group returns the first group with the given tag.
func (m *Message) Group(tag Tag) (Group, bool) {
	for _, g := range m.Groups {
		if g.Tag == tag {
			return g, true
		}
	}
	return Group{}, false
}

// GroupsOf returns every group with the given tag, in message order.
func (m *Message) GroupsOf(tag Tag) []Group {
	var out []Group
	for _, g := range m.Groups {
		if g.Tag == tag {
			out = append(out, g)
		}
	}
	return out
}

// StatusMessage returns the status-message operation attribute, if any.
func (m *Message) StatusMessage() string {
	g, ok := m.Group(TagOperationGroup)
	if !ok {
		return ""
	}
	a, ok := g.Get("status-message")
	if !ok || a.Value() == nil {
		return ""
	}
	return a.Value().String()
}

// Encode returns the wire form of m.
func (m *Message) Encode() ([]byte, error) {
	b := make([]byte, 0, 256+len(m.Data))
	b = append(b, m.Version.Major, m.Version.Minor)
	b = binary.BigEndian.AppendUint16(b, m.Code)
	b = binary.BigEndian.AppendUint32(b, m.RequestID)

	for _, g := range m.Groups {
		var err error
		if b, err = appendGroup(b, g); err != nil {
			return nil, err
		}
	}

	b = append(b, byte(TagEnd))
	return append(b, m.Data...), nil
}

// ParseOption tunes Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	skip func(error)
}

// WithSkipHook registers fn to be told about every attribute dropped because
// of an unknown value tag.
func WithSkipHook(fn func(error)) ParseOption {
	return func(c *parseConfig) {
		c.skip = fn
	}
}

// Parse decodes a complete IPP message. Attributes with unknown value tags
// are skipped; any other malformed attribute fails the whole message. A
// buffer that ends before end-of-attributes-tag yields a
// *TruncatedMessageError.
func Parse(buf []byte, opts ...ParseOption) (*Message, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(buf) < 8 {
		return nil, &TruncatedMessageError{Offset: len(buf), Len: len(buf)}
	}

	m := &Message{
		Version:   Version{Major: buf[0], Minor: buf[1]},
		Code:      binary.BigEndian.Uint16(buf[2:]),
		RequestID: binary.BigEndian.Uint32(buf[4:]),
	}

	off := 8
	for {
		if off >= len(buf) {
			return nil, &TruncatedMessageError{Offset: off, Len: len(buf)}
		}

		tag := Tag(buf[off])
		switch {
		case tag == TagEnd:
			if rest := buf[off+1:]; len(rest) > 0 {
				m.Data = bytes.Clone(rest)
			}
			return m, nil

		case tag.IsGroup():
			attrs, next, err := decodeAttributes(buf, off+1, cfg.skip)
			if err != nil {
				return nil, err
			}
			m.Groups = append(m.Groups, Group{Tag: tag, Attrs: attrs})
			off = next

		default:
			return nil, &MalformedAttributeError{Offset: off, Tag: tag, Err: ErrBadValue}
		}
	}
}
