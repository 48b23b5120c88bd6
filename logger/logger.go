package logger

import (
	"log"
	"os"
)

// ProgressLogger logs one line per file as cmd/cssdom starts parsing or
// linting it, when --verbose is set.
var ProgressLogger = log.New(os.Stdout, "cssdom.progress: ", log.LstdFlags)

// WarningLogger emits one warning per declaration that `cssdom lint` finds
// the property registry rejecting.
var WarningLogger = log.New(os.Stdout, "cssdom.warning: ", log.Lmsgprefix)
