package ipp

import "fmt"

// Op is an IPP operation code.
type Op uint16

const (
	OpPrintJob             Op = 0x0002
	OpCreateJob            Op = 0x0005
	OpSendDocument         Op = 0x0006
	OpCancelJob            Op = 0x0008
	OpGetJobAttributes     Op = 0x0009
	OpGetJobs              Op = 0x000a
	OpGetPrinterAttributes Op = 0x000b
	OpHoldJob              Op = 0x000c
	OpReleaseJob           Op = 0x000d
	OpPausePrinter         Op = 0x0010
	OpResumePrinter        Op = 0x0011
	OpPurgeJobs            Op = 0x0012

	OpCupsGetDefault  Op = 0x4001
	OpCupsGetPrinters Op = 0x4002
)

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("0x%4.4x", uint16(op))
}

var opNames = map[Op]string{
	OpPrintJob:             "Print-Job",
	OpCreateJob:            "Create-Job",
	OpSendDocument:         "Send-Document",
	OpCancelJob:            "Cancel-Job",
	OpGetJobAttributes:     "Get-Job-Attributes",
	OpGetJobs:              "Get-Jobs",
	OpGetPrinterAttributes: "Get-Printer-Attributes",
	OpHoldJob:              "Hold-Job",
	OpReleaseJob:           "Release-Job",
	OpPausePrinter:         "Pause-Printer",
	OpResumePrinter:        "Resume-Printer",
	OpPurgeJobs:            "Purge-Jobs",
	OpCupsGetDefault:       "CUPS-Get-Default",
	OpCupsGetPrinters:      "CUPS-Get-Printers",
}
