package core

import "log"

// CoreConfig carries the properties every photometry tool shares.
type CoreConfig struct {
	Env           string // dev, QA, etc....
	IsShell       bool   // If tool running in shell.
	IsHeadless    bool   // Running as a service: nothing to stderr.
	ExitOnFailure bool   // Exit on a failure or try to continue
	Log           *log.Logger
}
