// Package monitoring provides the injectable progress logger used by the
// merge pipeline stages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Stagef logs a progress event attributed to a pipeline stage
// ("load", "transform", "write"). Stage events carry counts rather
// than prose so they stay greppable in batch logs.
func Stagef(stage, format string, v ...interface{}) {
	args := make([]interface{}, 0, len(v)+1)
	args = append(args, stage)
	args = append(args, v...)
	Logf("[%s] "+format, args...)
}
