package style

import (
	"github.com/heroku/color"
)

// Symbol quotes identifiers such as stage, image and file names in messages.
var Symbol = func(value string) string {
	if color.Enabled() {
		return Key(value)
	}
	return "'" + value + "'"
}

var Key = color.HiBlueString

var Warn = color.New(color.FgYellow, color.Bold).SprintfFunc()

var Error = color.New(color.FgRed, color.Bold).SprintfFunc()

var Step = func(format string, a ...interface{}) string {
	return color.CyanString("===> "+format, a...)
}

// Prefix marks the application or stage a line of output belongs to.
var Prefix = color.CyanString

var Cached = color.HiBlackString

// pull progress
var (
	Waiting     = color.HiBlackString
	Working     = color.HiBlueString
	Complete    = color.GreenString
	ProgressBar = color.HiBlueString
)
