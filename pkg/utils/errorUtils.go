package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/trimble-oss/trcphotometry/pkg/core"
)

// CheckError Simplifies the error checking process
func CheckError(config *core.CoreConfig, err error, exit bool) {
	// If code wants to exit and ExitOnFailure is specified,
	// then we can exit here.
	if err != nil && exit && config.ExitOnFailure {
		config.Log.Printf("Errors encountered, exiting and writing to log file: %v\n", err)
		log.Fatal(err)
	}
}

// LogErrorMessage writes errors to the passed logger object and exits
func LogErrorMessage(config *core.CoreConfig, errorMessage string, exit bool) {
	_prefix := config.Log.Prefix()
	config.Log.SetPrefix("[ERROR]")
	if exit && config.ExitOnFailure {
		if !config.IsHeadless {
			fmt.Fprintf(os.Stderr, "Errors encountered, exiting and writing to log file\n")
		}
		config.Log.Fatal(errorMessage)
	} else {
		config.Log.Println(errorMessage)
		config.Log.SetPrefix(_prefix)
	}
}

// LogErrorObject writes errors to the passed logger object and exits
func LogErrorObject(config *core.CoreConfig, err error, exit bool) {
	if err != nil {
		_prefix := config.Log.Prefix()
		config.Log.SetPrefix("[ERROR]")
		if exit && config.ExitOnFailure {
			if !config.IsHeadless {
				fmt.Fprintf(os.Stderr, "Errors encountered, exiting and writing to log file: %v\n", err)
			}
			config.Log.Fatal(SanitizeForLogging(err.Error()))
		} else {
			config.Log.Println(SanitizeForLogging(err.Error()))
			config.Log.SetPrefix(_prefix)
		}
	}
}

// LogWarningMessage writes warnings to the passed logger object
func LogWarningMessage(config *core.CoreConfig, warningMessage string) {
	_prefix := config.Log.Prefix()
	config.Log.SetPrefix("[WARN]")
	config.Log.Println(SanitizeForLogging(warningMessage))
	config.Log.SetPrefix(_prefix)
}

// LogInfo writes informational messages to the passed logger object
func LogInfo(config *core.CoreConfig, msg string) {
	if config == nil {
		return
	}
	if config.IsShell && !config.IsHeadless {
		fmt.Fprintln(os.Stderr, SanitizeForLogging(msg))
	}
	if config.Log != nil {
		_prefix := config.Log.Prefix()
		config.Log.SetPrefix("[INFO]")
		config.Log.Println(SanitizeForLogging(msg))
		config.Log.SetPrefix(_prefix)
	}
}

// LogErrorAndSafeExit -- provides isolated location of os.Exit to ensure os.Exit properly processed.
func LogErrorAndSafeExit(config *core.CoreConfig, err error, code int) error {
	if config.Log != nil && err != nil {
		LogInfo(config, err.Error())
	}

	if err != nil && config.ExitOnFailure {
		os.Exit(code)
	}

	return err
}

// LogAndSafeExit -- provides isolated location of os.Exit to ensure os.Exit properly processed.
func LogAndSafeExit(config *core.CoreConfig, message string, code int) error {
	if config.Log != nil && message != "" {
		LogInfo(config, message)
	}

	if config.ExitOnFailure {
		os.Exit(code)
	}

	return errors.New(message)
}

func SanitizeForLogging(errMsg string) string {
	errMsgSanitized := strings.ReplaceAll(errMsg, "\n", "")
	errMsgSanitized = strings.ReplaceAll(errMsgSanitized, "\r", "")
	return errMsgSanitized
}
