package globals

// response codes sent back by the bootloader, one ASCII byte per received line
const (
	RC_OK              byte = '0'
	RC_INVALID         byte = '1'
	RC_BAD_CHECKSUM    byte = '2'
	RC_BAD_ADDRESS     byte = '3'
	RC_BAD_RECORD_TYPE byte = '4'
	RC_RECORD_TOO_LONG byte = '5'
)

// custom record types handled by the bootloader on top of data and EOF records
const (
	// resets the page erase map so pages get erased again on the next write
	RECORD_RESET_ERASE_MAP = ":00000022DE\n"
	// erases every user code flash page
	RECORD_ERASE_ALL = ":00000023DD\n"
)

// process exit statuses
const (
	EXIT_OK              = 0
	EXIT_USAGE           = 1
	EXIT_STARTUP_FAILED  = 2
	EXIT_DOWNLOAD_FAILED = 3
)
