/**
Wrapper around the regular serial package to simplify the interface

This wrapper should:
1. Be able to list all the ports, and open one with the bootloader's line settings
2. Send one Intel HEX record at a time
3. Read back the single status byte the bootloader answers each record with
*/

package rpSerial

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// same line settings pyserial opens a port with
const DEFAULT_BAUD_RATE = 9600
const DATA_BITS = 8

var ErrReadTimeout = errors.New("timed out waiting for bootloader response")

type RpSerial struct {
	serial.Port

	logger      *zap.Logger
	portName    string
	readTimeout time.Duration
}

// NewRPSerial opens portName. A baudrate of 0 uses DEFAULT_BAUD_RATE and a
// readTimeout of 0 makes every read block until a byte arrives.
func NewRPSerial(portName string, baudrate int, readTimeout time.Duration, logger *zap.Logger) (*RpSerial, error) {
	if baudrate == 0 {
		baudrate = DEFAULT_BAUD_RATE
	}

	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: DATA_BITS,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	r, err := newRPSerial(port, portName, readTimeout, logger)
	if err != nil {
		port.Close()
		return nil, err
	}

	logger.Info("Opened serial port", zap.String("portName", portName), zap.Int("baudRate", baudrate))
	return r, nil
}

func newRPSerial(port serial.Port, portName string, readTimeout time.Duration, logger *zap.Logger) (*RpSerial, error) {
	if readTimeout > 0 {
		if err := port.SetReadTimeout(readTimeout); err != nil {
			return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
		}
	}

	return &RpSerial{
		Port:        port,
		logger:      logger,
		portName:    portName,
		readTimeout: readTimeout,
	}, nil
}

func (r *RpSerial) WriteSingleMessage(message []byte) error {
	for written := 0; written < len(message); {
		n, err := r.Write(message[written:])
		if err != nil {
			r.logger.Error("Error while trying to send message", zap.Error(err))
			return err
		}
		written += n
	}

	r.logger.Debug("Wrote message to serial port", zap.Int("bytesWritten", len(message)), zap.ByteString("string", message))
	return nil
}

// read exactly one byte, the bootloader's answer to the last record
func (r *RpSerial) ReadSingleByte() (byte, error) {
	oneByte := [1]byte{}

	for {
		n, err := r.Read(oneByte[:])
		if err != nil {
			r.logger.Error("Error while trying to read response", zap.Error(err))
			return 0, err
		}
		if n == 1 {
			break
		}

		// go.bug.st/serial reports a timeout as a zero length read
		if r.readTimeout > 0 {
			r.logger.Warn("Read timed out", zap.Duration("timeout", r.readTimeout))
			return 0, ErrReadTimeout
		}
	}

	r.logger.Debug("Read response byte", zap.Uint8("byte", oneByte[0]))
	return oneByte[0], nil
}

func (r *RpSerial) Close() error {
	err := r.Port.Close()
	if err != nil {
		r.logger.Warn("Error closing serial port", zap.String("portName", r.portName), zap.Error(err))
	} else {
		r.logger.Info("Closed serial port", zap.String("portName", r.portName))
	}
	return err
}

func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
