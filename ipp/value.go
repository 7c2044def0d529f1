package ipp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Type classifies the Go representation of an attribute value.
type Type int

// Value types.
const (
	TypeInvalid Type = iota
	TypeVoid
	TypeInteger
	TypeBoolean
	TypeString
	TypeDateTime
	TypeResolution
	TypeRange
	TypeTextWithLang
	TypeBinary
	TypeCollection
)

// Value is the decoded payload of a single attribute value.
type Value interface {
	Type() Type
	String() string
	encode() ([]byte, error)
}

// Void is the value of out-of-band tags such as no-value and unknown.
type Void struct{}

func (Void) Type() Type              { return TypeVoid }
func (Void) String() string          { return "" }
func (Void) encode() ([]byte, error) { return nil, nil }

// Integer is the value of integer and enum attributes.
type Integer int32

func (v Integer) Type() Type     { return TypeInteger }
func (v Integer) String() string { return fmt.Sprint(int32(v)) }

func (v Integer) encode() ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, uint32(v)), nil
}

// Boolean is the value of boolean attributes.
type Boolean bool

func (v Boolean) Type() Type     { return TypeBoolean }
func (v Boolean) String() string { return fmt.Sprint(bool(v)) }

func (v Boolean) encode() ([]byte, error) {
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// String is the value of all character-string attributes (text, name, keyword,
// uri, charset, naturalLanguage, mimeMediaType and friends).
type String string

func (v String) Type() Type     { return TypeString }
func (v String) String() string { return string(v) }

func (v String) encode() ([]byte, error) {
	return []byte(v), nil
}

// Binary is the value of octetString attributes.
type Binary []byte

func (v Binary) Type() Type     { return TypeBinary }
func (v Binary) String() string { return fmt.Sprintf("%x", []byte(v)) }

func (v Binary) encode() ([]byte, error) {
	return []byte(v), nil
}

// Time is the value of dateTime attributes. The wire format carries
// deciseconds, so anything finer is truncated on encode.
type Time struct {
	time.Time
}

func (v Time) Type() Type     { return TypeDateTime }
func (v Time) String() string { return v.Time.Format(time.RFC3339) }

func (v Time) encode() ([]byte, error) {
	t := v.Time
	if t.Year() < 0 || t.Year() > 0xffff {
		return nil, fmt.Errorf("year %d out of range", t.Year())
	}

	_, offset := t.Zone()
	dir := byte('+')
	if offset < 0 {
		dir = '-'
		offset = -offset
	}

	b := binary.BigEndian.AppendUint16(nil, uint16(t.Year()))
	return append(b,
		byte(t.Month()),
		byte(t.Day()),
		byte(t.Hour()),
		byte(t.Minute()),
		byte(t.Second()),
		byte(t.Nanosecond()/100000000),
		dir,
		byte(offset/3600),
		byte((offset%3600)/60),
	), nil
}

// Units of a Resolution value.
type Units byte

const (
	UnitsDpi  Units = 3
	UnitsDpcm Units = 4
)

func (u Units) String() string {
	switch u {
	case UnitsDpi:
		return "dpi"
	case UnitsDpcm:
		return "dpcm"
	}
	return fmt.Sprintf("0x%2.2x", byte(u))
}

// Resolution is the value of resolution attributes.
type Resolution struct {
	Xres, Yres int32
	Units      Units
}

func (v Resolution) Type() Type { return TypeResolution }

func (v Resolution) String() string {
	return fmt.Sprintf("%dx%d%s", v.Xres, v.Yres, v.Units)
}

func (v Resolution) encode() ([]byte, error) {
	b := binary.BigEndian.AppendUint32(nil, uint32(v.Xres))
	b = binary.BigEndian.AppendUint32(b, uint32(v.Yres))
	return append(b, byte(v.Units)), nil
}

// Range is the value of rangeOfInteger attributes. Lower <= Upper is not
// checked here.
type Range struct {
	Lower, Upper int32
}

func (v Range) Type() Type     { return TypeRange }
func (v Range) String() string { return fmt.Sprintf("%d-%d", v.Lower, v.Upper) }

func (v Range) encode() ([]byte, error) {
	b := binary.BigEndian.AppendUint32(nil, uint32(v.Lower))
	return binary.BigEndian.AppendUint32(b, uint32(v.Upper)), nil
}

// TextWithLang is the value of textWithLanguage and nameWithLanguage attributes.
type TextWithLang struct {
	Lang, Text string
}

func (v TextWithLang) Type() Type     { return TypeTextWithLang }
func (v TextWithLang) String() string { return v.Text + " [" + v.Lang + "]" }

func (v TextWithLang) encode() ([]byte, error) {
	if len(v.Lang) > 0xffff || len(v.Text) > 0xffff {
		return nil, fmt.Errorf("text with language too long")
	}
	b := binary.BigEndian.AppendUint16(nil, uint16(len(v.Lang)))
	b = append(b, v.Lang...)
	b = binary.BigEndian.AppendUint16(b, uint16(len(v.Text)))
	return append(b, v.Text...), nil
}

// Collection is the value of a collection attribute: an ordered list of
// member attributes.
type Collection []Attribute

func (v Collection) Type() Type { return TypeCollection }

func (v Collection) String() string {
	parts := make([]string, 0, len(v))
	for _, a := range v {
		parts = append(parts, a.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Collections are written member by member by the codec; the begCollection
// entry itself has an empty value.
func (v Collection) encode() ([]byte, error) { return nil, nil }

// decodeValue turns the raw bytes of one value into a Value according to tag.
func decodeValue(tag Tag, data []byte) (Value, error) {
	switch tag.Type() {
	case TypeVoid:
		return Void{}, nil

	case TypeInteger:
		if len(data) != 4 {
			return nil, ErrValueLength
		}
		return Integer(int32(binary.BigEndian.Uint32(data))), nil

	case TypeBoolean:
		if len(data) != 1 {
			return nil, ErrValueLength
		}
		return Boolean(data[0] != 0), nil

	case TypeString:
		return String(data), nil

	case TypeBinary:
		return Binary(bytes.Clone(data)), nil

	case TypeDateTime:
		if len(data) != 11 {
			return nil, ErrValueLength
		}
		offset := int(data[9])*3600 + int(data[10])*60
		switch data[8] {
		case '+':
		case '-':
			offset = -offset
		default:
			return nil, ErrBadValue
		}
		loc := time.UTC
		if offset != 0 {
			loc = time.FixedZone("", offset)
		}
		t := time.Date(
			int(binary.BigEndian.Uint16(data)),
			time.Month(data[2]),
			int(data[3]),
			int(data[4]),
			int(data[5]),
			int(data[6]),
			int(data[7])*100000000,
			loc,
		)
		return Time{t}, nil

	case TypeResolution:
		if len(data) != 9 {
			return nil, ErrValueLength
		}
		return Resolution{
			Xres:  int32(binary.BigEndian.Uint32(data)),
			Yres:  int32(binary.BigEndian.Uint32(data[4:])),
			Units: Units(data[8]),
		}, nil

	case TypeRange:
		if len(data) != 8 {
			return nil, ErrValueLength
		}
		return Range{
			Lower: int32(binary.BigEndian.Uint32(data)),
			Upper: int32(binary.BigEndian.Uint32(data[4:])),
		}, nil

	case TypeTextWithLang:
		if len(data) < 2 {
			return nil, ErrValueLength
		}
		n := int(binary.BigEndian.Uint16(data))
		if len(data) < 2+n+2 {
			return nil, ErrValueLength
		}
		lang := string(data[2 : 2+n])
		rest := data[2+n:]
		m := int(binary.BigEndian.Uint16(rest))
		if len(rest) != 2+m {
			return nil, ErrValueLength
		}
		return TextWithLang{Lang: lang, Text: string(rest[2:])}, nil
	}

	return nil, ErrUnknownTag
}
