package commander

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"UCLA-Rocket-Project/ccbootload/internal/globals"
)

type SerialReaderWriter interface {
	WriteSingleMessage(message []byte) error
	ReadSingleByte() (byte, error)
}

// sendRecord writes one record exactly as given, waits for the status byte and
// reports it. It returns true only when the bootloader answered RC_OK.
func sendRecord(conn SerialReaderWriter, log io.Writer, record string) bool {
	display := strings.TrimRight(record, "\r\n")

	if err := conn.WriteSingleMessage([]byte(record)); err != nil {
		fmt.Fprintf(log, "%s Write failed: %v\n", display, err)
		return false
	}

	rc, err := conn.ReadSingleByte()
	if err != nil {
		fmt.Fprintf(log, "%s Read failed: %v\n", display, err)
		return false
	}

	description, ok := Describe(rc)
	if !ok {
		description = UNKNOWN_ERROR
	}
	fmt.Fprintf(log, "%s RC = %s (%s)\n", display, formatCode(rc), description)

	return rc == globals.RC_OK
}

func formatCode(rc byte) string {
	if rc < unicode.MaxASCII && unicode.IsPrint(rune(rc)) {
		return string(rc)
	}
	return fmt.Sprintf("0x%02X", rc)
}
