// Package testlogger builds a per-test Logger, adapted from the teacher's
// common/testlogger package.
package testlogger

import (
	"os"
	"testing"

	"github.com/groupsig-go/groupsig/internal/log"
)

// Level returns DebugLevel when GROUPSIG_TEST_LOGS=DEBUG is set in the
// environment, InfoLevel otherwise.
func Level(t testing.TB) int {
	logLevel := log.InfoLevel
	debugEnv, isDebug := os.LookupEnv("GROUPSIG_TEST_LOGS")
	if isDebug && debugEnv == "DEBUG" {
		t.Log("Enabling DebugLevel logs")
		logLevel = log.DebugLevel
	}
	return logLevel
}

// New returns a logger named after the running test.
func New(t testing.TB) log.Logger {
	return log.New(nil, Level(t), true).With("testName", t.Name())
}
