// Package klog provides simple leveled logging for the shard runtime,
// acceptor, and storage actors. Time/date are left out on purpose -- a
// supervisor (systemd, a container runtime) almost always timestamps
// stdout/stderr already.
package klog

import (
	"fmt"
	"io"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrorWriter io.Writer = os.Stderr
)

const (
	debugPrefix = "<7>[DEBUG]"
	infoPrefix  = "<6>[INFO]"
	warnPrefix  = "<4>[WARN]"
	errPrefix   = "<3>[ERROR]"
	fatalPrefix = "<3>[FATAL]"
)

func init() {
	lvl, ok := os.LookupEnv("KVLOGLEVEL")
	if !ok {
		return
	}
	switch lvl {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
		// nothing to discard
	default:
		Warnf("KVLOGLEVEL has invalid value %q", lvl)
	}
}

func Debugf(format string, v ...interface{}) {
	if DebugWriter != io.Discard {
		fmt.Fprintf(DebugWriter, debugPrefix+" "+format+"\n", v...)
	}
}

func Infof(format string, v ...interface{}) {
	if InfoWriter != io.Discard {
		fmt.Fprintf(InfoWriter, infoPrefix+" "+format+"\n", v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if WarnWriter != io.Discard {
		fmt.Fprintf(WarnWriter, warnPrefix+" "+format+"\n", v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if ErrorWriter != io.Discard {
		fmt.Fprintf(ErrorWriter, errPrefix+" "+format+"\n", v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	fmt.Fprintf(ErrorWriter, fatalPrefix+" "+format+"\n", v...)
	os.Exit(1)
}
