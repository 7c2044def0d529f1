package ipp

import "fmt"

// Status is the status-code of an IPP response.
type Status uint16

const (
	StatusOK                          Status = 0x0000
	StatusOKIgnoredOrSubstituted      Status = 0x0001
	StatusOKConflicting               Status = 0x0002
	StatusErrorBadRequest             Status = 0x0400
	StatusErrorForbidden              Status = 0x0401
	StatusErrorNotAuthenticated       Status = 0x0402
	StatusErrorNotAuthorized          Status = 0x0403
	StatusErrorNotPossible            Status = 0x0404
	StatusErrorTimeout                Status = 0x0405
	StatusErrorNotFound               Status = 0x0406
	StatusErrorGone                   Status = 0x0407
	StatusErrorRequestEntity          Status = 0x0408
	StatusErrorRequestValue           Status = 0x0409
	StatusErrorDocumentFormat         Status = 0x040a
	StatusErrorAttributesOrValues     Status = 0x040b
	StatusErrorURIScheme              Status = 0x040c
	StatusErrorCharset                Status = 0x040d
	StatusErrorConflicting            Status = 0x040e
	StatusErrorInternal               Status = 0x0500
	StatusErrorOperationNotSupported  Status = 0x0501
	StatusErrorServiceUnavailable     Status = 0x0502
	StatusErrorVersionNotSupported    Status = 0x0503
	StatusErrorDevice                 Status = 0x0504
	StatusErrorTemporary              Status = 0x0505
	StatusErrorNotAcceptingJobs       Status = 0x0506
	StatusErrorBusy                   Status = 0x0507
	StatusErrorJobCanceled            Status = 0x0508
	StatusErrorMultipleDocsNotSupport Status = 0x0509
)

// StatusClass is the band a status code falls in.
type StatusClass int

const (
	StatusClassUnknown StatusClass = iota
	StatusClassSuccessful
	StatusClassInformational
	StatusClassRedirection
	StatusClassClientError
	StatusClassServerError
)

// Class returns the band of s.
func (s Status) Class() StatusClass {
	switch {
	case s <= 0x00ff:
		return StatusClassSuccessful
	case s >= 0x0100 && s <= 0x01ff:
		return StatusClassInformational
	case s >= 0x0200 && s <= 0x02ff:
		return StatusClassRedirection
	case s >= 0x0400 && s <= 0x04ff:
		return StatusClassClientError
	case s >= 0x0500 && s <= 0x05ff:
		return StatusClassServerError
	}
	return StatusClassUnknown
}

// Successful reports whether s is in the successful band.
func (s Status) Successful() bool {
	return s.Class() == StatusClassSuccessful
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("0x%4.4x", uint16(s))
}

func (c StatusClass) String() string {
	switch c {
	case StatusClassSuccessful:
		return "successful"
	case StatusClassInformational:
		return "informational"
	case StatusClassRedirection:
		return "redirection"
	case StatusClassClientError:
		return "client-error"
	case StatusClassServerError:
		return "server-error"
	}
	return "unknown"
}

var statusNames = map[Status]string{
	StatusOK:                          "successful-ok",
	StatusOKIgnoredOrSubstituted:      "successful-ok-ignored-or-substituted-attributes",
	StatusOKConflicting:               "successful-ok-conflicting-attributes",
	StatusErrorBadRequest:             "client-error-bad-request",
	StatusErrorForbidden:              "client-error-forbidden",
	StatusErrorNotAuthenticated:       "client-error-not-authenticated",
	StatusErrorNotAuthorized:          "client-error-not-authorized",
	StatusErrorNotPossible:            "client-error-not-possible",
	StatusErrorTimeout:                "client-error-timeout",
	StatusErrorNotFound:               "client-error-not-found",
	StatusErrorGone:                   "client-error-gone",
	StatusErrorRequestEntity:          "client-error-request-entity-too-large",
	StatusErrorRequestValue:           "client-error-request-value-too-long",
	StatusErrorDocumentFormat:         "client-error-document-format-not-supported",
	StatusErrorAttributesOrValues:     "client-error-attributes-or-values-not-supported",
	StatusErrorURIScheme:              "client-error-uri-scheme-not-supported",
	StatusErrorCharset:                "client-error-charset-not-supported",
	StatusErrorConflicting:            "client-error-conflicting-attributes",
	StatusErrorInternal:               "server-error-internal-error",
	StatusErrorOperationNotSupported:  "server-error-operation-not-supported",
	StatusErrorServiceUnavailable:     "server-error-service-unavailable",
	StatusErrorVersionNotSupported:    "server-error-version-not-supported",
	StatusErrorDevice:                 "server-error-device-error",
	StatusErrorTemporary:              "server-error-temporary-error",
	StatusErrorNotAcceptingJobs:       "server-error-not-accepting-jobs",
	StatusErrorBusy:                   "server-error-busy",
	StatusErrorJobCanceled:            "server-error-job-canceled",
	StatusErrorMultipleDocsNotSupport: "server-error-multiple-document-jobs-not-supported",
}
