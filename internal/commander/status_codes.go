package commander

import "UCLA-Rocket-Project/ccbootload/internal/globals"

const UNKNOWN_ERROR = "Unknown Error"

var statusCodes = map[byte]string{
	globals.RC_OK:              "OK",
	globals.RC_INVALID:         "Intel HEX Invalid",
	globals.RC_BAD_CHECKSUM:    "Bad Checksum",
	globals.RC_BAD_ADDRESS:     "Bad Address",
	globals.RC_BAD_RECORD_TYPE: "Bad Record Type",
	globals.RC_RECORD_TOO_LONG: "Record Too Long",
}

// Describe returns the description of a bootloader response code and whether
// the code is a known one.
func Describe(rc byte) (string, bool) {
	description, ok := statusCodes[rc]
	return description, ok
}
