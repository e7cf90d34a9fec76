package session

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"UCLA-Rocket-Project/ccbootload/internal/commander"
	"UCLA-Rocket-Project/ccbootload/internal/config"
)

type Connection interface {
	commander.SerialReaderWriter
	io.Closer
}

type PortConnector func(portName string) (Connection, error)

// Session holds the hex file and the serial connection for one transfer.
type Session struct {
	hexFile io.ReadCloser
	conn    Connection
	logger  *zap.Logger
}

// Open opens the hex file first, then the port. Nothing stays open on error.
func Open(portName string, hexPath string, connector PortConnector, logger *zap.Logger) (*Session, error) {
	hexFile, err := os.Open(hexPath)
	if err != nil {
		return nil, fmt.Errorf("open hex file: %w", err)
	}

	conn, err := connector(portName)
	if err != nil {
		return nil, multierr.Append(err, hexFile.Close())
	}

	logger.Info("Transfer session opened", zap.String("portName", portName), zap.String("hexFile", hexPath))
	return &Session{
		hexFile: hexFile,
		conn:    conn,
		logger:  logger,
	}, nil
}

// Run sends the configured bootloader commands and then the hex file,
// reporting progress to log.
func (s *Session) Run(cfg *config.Config, log io.Writer) bool {
	if cfg.ResetEraseMap && !commander.ResetEraseMapCommand(s.conn, log) {
		s.logger.Warn("Reset erase map rejected, hex file not sent")
		return false
	}
	if cfg.EraseAll && !commander.EraseAllCommand(s.conn, log) {
		s.logger.Warn("Erase all rejected, hex file not sent")
		return false
	}

	success := commander.DownloadCommand(s.hexFile, s.conn, log)
	if success {
		s.logger.Info("Download complete")
	} else {
		s.logger.Warn("Download failed")
	}
	return success
}

func (s *Session) Close() error {
	err := multierr.Append(s.conn.Close(), s.hexFile.Close())
	if err != nil {
		s.logger.Warn("Error closing transfer session", zap.Error(err))
	}
	return err
}
