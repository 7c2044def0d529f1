package ipp

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func rawEntry(tag Tag, name string, value []byte) []byte {
	b := []byte{byte(tag)}
	b = binary.BigEndian.AppendUint16(b, uint16(len(name)))
	b = append(b, name...)
	b = binary.BigEndian.AppendUint16(b, uint16(len(value)))
	return append(b, value...)
}

func TestAttribute_RoundTrip(t *testing.T) {
	Convey("Single valued attributes survive encode and decode", t, func() {
		cases := []Attribute{
			MakeAttribute("copies", TagInteger, Integer(3)),
			MakeAttribute("job-state", TagEnum, Integer(-7)),
			MakeAttribute("printer-is-accepting-jobs", TagBoolean, Boolean(true)),
			MakeAttribute("printer-name", TagName, String("PDF")),
			MakeAttribute("printer-uri-supported", TagURI, String("ipp://localhost:631/printers/PDF")),
			MakeAttribute("attributes-charset", TagCharset, String("utf-8")),
			MakeAttribute("document-format", TagMimeType, String("application/pdf")),
			MakeAttribute("printer-info", TagTextLang, TextWithLang{Lang: "fr-fr", Text: "Imprimante"}),
			MakeAttribute("job-password", TagString, Binary{0x00, 0xff, 0x10}),
			MakeAttribute("printer-resolution-default", TagResolution, Resolution{Xres: 600, Yres: 300, Units: UnitsDpi}),
			MakeAttribute("copies-supported", TagRange, Range{Lower: 1, Upper: 9999}),
			MakeAttribute("inverted", TagRange, Range{Lower: 10, Upper: 2}),
			MakeAttribute("printer-state-change-date-time", TagDateTime, Time{time.Date(2024, 5, 6, 7, 8, 9, 300000000, time.UTC)}),
			MakeAttribute("printer-alert", TagNoValue, Void{}),
		}

		for _, a := range cases {
			b, err := EncodeAttribute(a)
			So(err, ShouldBeNil)

			got, next, err := DecodeAttribute(b, 0)
			So(err, ShouldBeNil)
			So(next, ShouldEqual, len(b))
			So(got, ShouldResemble, a)
		}
	})

	Convey("Date-time keeps its UTC offset", t, func() {
		zone := time.FixedZone("", -(5*3600 + 30*60))
		want := time.Date(2023, 12, 31, 23, 59, 58, 900000000, zone)

		b, err := EncodeAttribute(MakeAttribute("time-at-creation", TagDateTime, Time{want}))
		So(err, ShouldBeNil)
		So(len(b), ShouldEqual, 1+2+len("time-at-creation")+2+11)

		got, _, err := DecodeAttribute(b, 0)
		So(err, ShouldBeNil)
		tm := got.Value().(Time)
		So(tm.Equal(want), ShouldBeTrue)
		_, offset := tm.Zone()
		So(offset, ShouldEqual, -(5*3600 + 30*60))
	})

	Convey("Integer values are four bytes big-endian", t, func() {
		b, err := EncodeAttribute(MakeAttribute("job-id", TagInteger, Integer(258)))
		So(err, ShouldBeNil)
		So(b, ShouldResemble, rawEntry(TagInteger, "job-id", []byte{0, 0, 1, 2}))
	})
}

func TestAttribute_MultiValued(t *testing.T) {
	Convey("Continuation entries fold into one attribute", t, func() {
		a := MakeAttribute("color", TagKeyword, String("red"), String("green"), String("blue"))

		b, err := EncodeAttribute(a)
		So(err, ShouldBeNil)

		want := rawEntry(TagKeyword, "color", []byte("red"))
		want = append(want, rawEntry(TagKeyword, "", []byte("green"))...)
		want = append(want, rawEntry(TagKeyword, "", []byte("blue"))...)
		So(b, ShouldResemble, want)

		g, next, err := DecodeGroup(append([]byte{byte(TagPrinterGroup)}, b...), 0)
		So(err, ShouldBeNil)
		So(next, ShouldEqual, len(b)+1)
		So(g.Attrs, ShouldHaveLength, 1)
		So(g.Attrs[0].Name, ShouldEqual, "color")
		So(g.Attrs[0].Strings(), ShouldResemble, []string{"red", "green", "blue"})
	})

	Convey("A lone continuation entry decodes with an empty name", t, func() {
		got, _, err := DecodeAttribute(rawEntry(TagKeyword, "", []byte("green")), 0)
		So(err, ShouldBeNil)
		So(got.Name, ShouldEqual, "")
		So(got.Value(), ShouldEqual, String("green"))
	})

	Convey("A group may not start with a continuation entry", t, func() {
		buf := append([]byte{byte(TagJobGroup)}, rawEntry(TagKeyword, "", []byte("x"))...)
		_, _, err := DecodeGroup(buf, 0)
		So(errors.Is(err, ErrMalformedAttribute), ShouldBeTrue)
	})
}

func TestAttribute_Collection(t *testing.T) {
	Convey("Collections round-trip through a group", t, func() {
		mediaCol := Collection{
			MakeAttribute("media-size", TagBeginCollection, Collection{
				MakeAttribute("x-dimension", TagInteger, Integer(21000)),
				MakeAttribute("y-dimension", TagInteger, Integer(29700)),
			}),
			MakeAttribute("media-source", TagKeyword, String("tray-1")),
		}
		g := Group{Tag: TagPrinterGroup}
		g.Add(MakeAttribute("media-col-default", TagBeginCollection, mediaCol))
		g.Add(MakeAttribute("printer-name", TagName, String("PDF")))

		b, err := EncodeGroup(g)
		So(err, ShouldBeNil)

		got, next, err := DecodeGroup(b, 0)
		So(err, ShouldBeNil)
		So(next, ShouldEqual, len(b))
		So(got, ShouldResemble, g)
	})

	Convey("An unterminated collection is truncated", t, func() {
		buf := rawEntry(TagBeginCollection, "media-col", nil)
		buf = append(buf, rawEntry(TagMemberName, "", []byte("media-type"))...)
		_, _, err := DecodeAttribute(buf, 0)
		So(errors.Is(err, ErrTruncatedMessage), ShouldBeTrue)
		So(errors.Is(err, ErrMalformedAttribute), ShouldBeFalse)
	})
}

func TestAttribute_Malformed(t *testing.T) {
	Convey("Declared value length beyond the buffer", t, func() {
		buf := rawEntry(TagName, "printer-name", []byte("PDF"))
		buf = buf[:len(buf)-1]

		_, next, err := DecodeAttribute(buf, 0)
		So(errors.Is(err, ErrMalformedAttribute), ShouldBeTrue)
		So(errors.Is(err, ErrValueLength), ShouldBeTrue)
		So(next, ShouldEqual, 0)

		var merr *MalformedAttributeError
		So(errors.As(err, &merr), ShouldBeTrue)
		So(merr.Offset, ShouldEqual, 0)
	})

	Convey("Buffer ending inside the entry header", t, func() {
		for _, buf := range [][]byte{{byte(TagName)}, {byte(TagName), 0}} {
			_, next, err := DecodeAttribute(buf, 0)
			So(errors.Is(err, ErrTruncatedMessage), ShouldBeTrue)
			So(errors.Is(err, ErrMalformedAttribute), ShouldBeFalse)
			So(next, ShouldEqual, 0)

			var terr *TruncatedMessageError
			So(errors.As(err, &terr), ShouldBeTrue)
			So(terr.Offset, ShouldEqual, 0)
			So(terr.Len, ShouldEqual, len(buf))
		}
	})

	Convey("Wrong fixed size for an integer", t, func() {
		_, _, err := DecodeAttribute(rawEntry(TagInteger, "copies", []byte{1, 2}), 0)
		So(errors.Is(err, ErrValueLength), ShouldBeTrue)
	})

	Convey("Unknown tag is reported but skippable", t, func() {
		unknown := rawEntry(Tag(0x2f), "x-vendor", []byte{1, 2, 3})
		buf := append(unknown, rawEntry(TagName, "printer-name", []byte("PDF"))...)

		a, next, err := DecodeAttribute(buf, 0)
		So(errors.Is(err, ErrUnknownTag), ShouldBeTrue)
		So(a.Name, ShouldEqual, "x-vendor")
		So(next, ShouldEqual, len(unknown))

		a, _, err = DecodeAttribute(buf, next)
		So(err, ShouldBeNil)
		So(a.Value(), ShouldEqual, String("PDF"))
	})

	Convey("Delimiters are not attributes", t, func() {
		_, _, err := DecodeAttribute([]byte{byte(TagEnd), 0, 0, 0, 0}, 0)
		So(errors.Is(err, ErrDelimiterTag), ShouldBeTrue)
	})
}
