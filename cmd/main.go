package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"UCLA-Rocket-Project/ccbootload/internal/config"
	"UCLA-Rocket-Project/ccbootload/internal/globals"
	"UCLA-Rocket-Project/ccbootload/internal/logger"
	"UCLA-Rocket-Project/ccbootload/internal/rpSerial"
	"UCLA-Rocket-Project/ccbootload/internal/session"
)

const USAGE = `
    CC Bootloader Download Utility

    Usage:  %s serial_port hex_file

`

const PROGRAM_NAME = "ccbootload"

// swapped out in tests
var newConnector = func(cfg *config.Config, log *zap.Logger) session.PortConnector {
	return func(portName string) (session.Connection, error) {
		conn, err := rpSerial.NewRPSerial(portName, cfg.BaudRate, cfg.ReadTimeout(), log)
		if err != nil {
			if ports, listErr := rpSerial.ListPorts(); listErr == nil {
				log.Warn("Could not open serial port", zap.Error(err), zap.Strings("availablePorts", ports))
			}
			return nil, err
		}
		return conn, nil
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(stdout, USAGE, PROGRAM_NAME)
		return globals.EXIT_USAGE
	}
	portName, hexPath := args[0], args[1]

	cfg, err := config.FromEnv()
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return globals.EXIT_STARTUP_FAILED
	}

	log, err := logger.NewLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not create logger: %v\n", err)
		return globals.EXIT_STARTUP_FAILED
	}
	defer log.Sync()

	s, err := session.Open(portName, hexPath, newConnector(cfg, log), log)
	if err != nil {
		log.Error("Could not start transfer", zap.Error(err))
		return globals.EXIT_STARTUP_FAILED
	}
	defer s.Close()

	if !s.Run(cfg, stdout) && cfg.ExitOnFailure {
		return globals.EXIT_DOWNLOAD_FAILED
	}
	return globals.EXIT_OK
}
