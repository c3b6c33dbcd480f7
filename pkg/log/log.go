// Package log provides the logging facade used across the core. It
// wraps logrus rather than printing directly so the cartridge's bank
// controllers can log anomalies (non-fatal writes to disabled SRAM,
// ROM writes on MBC0) without depending on logrus's API shape.
package log

import "github.com/sirupsen/logrus"

// Logger is the logging surface consumed by the core's components.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger backed by a logrus.Logger configured the way
// the rest of the core expects: no colour, no timestamp, no field
// sorting, no quoting, since output is consumed by humans reading a
// terminal or by test harnesses grepping for exact strings.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// Null returns a Logger that discards everything. Useful for test
// harnesses (SingleStepTests, Blargg ROMs) that don't want anomaly
// noise interleaved with test output.
func Null() Logger {
	return &nullLogger{}
}

type nullLogger struct{}

func (*nullLogger) Infof(string, ...interface{})  {}
func (*nullLogger) Warnf(string, ...interface{})  {}
func (*nullLogger) Errorf(string, ...interface{}) {}
func (*nullLogger) Debugf(string, ...interface{}) {}
