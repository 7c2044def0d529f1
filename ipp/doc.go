// Package ipp implements the binary message layer of the Internet Printing
// Protocol (RFC 8010): attribute values and groups, request construction and
// response parsing.
//
// Building a request:
//
//	b, err := ipp.Build(ipp.Request{
//		Op:         ipp.OpPausePrinter,
//		RequestID:  1,
//		PrinterURI: "ipp://localhost:631/printers/PDF",
//		User:       "alice",
//	})
//
// Parsing a response:
//
//	m, err := ipp.Parse(resp)
//	if m.Status().Successful() { ... }
//
// Multi-valued attributes are held as one Attribute with several Values; the
// continuation entries of the wire format never surface as separate
// attributes.
package ipp
