package commander

import (
	"bufio"
	"fmt"
	"io"

	"UCLA-Rocket-Project/ccbootload/internal/globals"
)

// DownloadCommand sends every line of the Intel HEX input to the bootloader in
// order, unmodified and with its terminator, and stops at the first line that
// is not acknowledged with RC_OK.
func DownloadCommand(lines io.Reader, conn SerialReaderWriter, log io.Writer) bool {
	reader := bufio.NewReader(lines)

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 && !sendRecord(conn, log, line) {
			fmt.Fprintf(log, "Error Downloading Code!\n")
			return false
		}

		if err == io.EOF {
			return true
		}
		if err != nil {
			fmt.Fprintf(log, "[Download]: Error reading hex file: %v\n", err)
			return false
		}
	}
}

// ResetEraseMapCommand makes the bootloader forget which pages it already
// erased this session, so rewritten pages get erased again.
func ResetEraseMapCommand(conn SerialReaderWriter, log io.Writer) bool {
	fmt.Fprintf(log, "[Reset Erase Map]: sending reset record\n")
	if !sendRecord(conn, log, globals.RECORD_RESET_ERASE_MAP) {
		fmt.Fprintf(log, "[Reset Erase Map]: Could not reset the erase map\n")
		return false
	}
	return true
}

func EraseAllCommand(conn SerialReaderWriter, log io.Writer) bool {
	fmt.Fprintf(log, "[Erase All]: sending command to erase user flash\n")
	if !sendRecord(conn, log, globals.RECORD_ERASE_ALL) {
		fmt.Fprintf(log, "[Erase All]: Could not erase user flash\n")
		return false
	}
	return true
}
