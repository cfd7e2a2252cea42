package tools

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Logs a user facing progress line. Lines are dropped while the logger is disabled.
func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	line := fmt.Sprintln(val...)
	if printTimestamp {
		line = "[" + time.Now().Format("2006-01-02 15.04:05.000") + "] " + line
	}
	glog.InfoDepth(1, line)
}
