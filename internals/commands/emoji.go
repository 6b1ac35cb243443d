package commands

import (
	"os"
	"runtime"
)

var emojiSupport = detectEmojiSupport(runtime.GOOS, os.Getenv)

// EmojiEnabled can be set to false to turn off emojis (--no-color)
var EmojiEnabled = true

// detectEmojiSupport guesses if the terminal can render emojis.
// Everything that is not windows usually can
func detectEmojiSupport(goos string, getenv func(string) string) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if goos != "windows" {
		return true
	}
	// windows terminal sets WT_SESSION, raw cmd and powershell set SESSIONNAME
	if getenv("WT_SESSION") != "" {
		return true
	}
	return getenv("SESSIONNAME") == ""
}

func EmojiSupported() bool {
	return emojiSupport
}

// Emoji returns the given string (usually a emoji) if the current terminal
// (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
