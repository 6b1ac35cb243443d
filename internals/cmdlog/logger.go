package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	emojis    bool
	indention int
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan bold line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.Bold(gchalk.Cyan(s)))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Infof formats and prints a "normal" line
func (l *Logger) Infof(format string, a ...interface{}) {
	l.println(fmt.Sprintf(format, a...))
}

// Log prints a dimmed line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	fmt.Fprintln(l.out, l.sprintEmoji("⚠️ ")+gchalk.Bold(gchalk.Yellow(s)))
}

// Warnf formats and prints a warning
func (l *Logger) Warnf(format string, a ...interface{}) {
	l.Warn(fmt.Sprintf(format, a...))
}

// Success prints a green line
func (l *Logger) Success(s string) {
	fmt.Fprintln(l.out, l.sprintEmoji("✅")+gchalk.Green(s))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	fmt.Fprintln(l.out, l.sprintEmoji("💣")+gchalk.Bold(gchalk.Red("Error: "))+gchalk.Bold(s))
	os.Exit(1)
}

// Indent returns a copy of the logger that indents "normal" lines by n spaces
func (l *Logger) Indent(n int) *Logger {
	logger := *l
	logger.indention += n
	return &logger
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	return &Task{&logger, 0, end}
}

// New returns a new Logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a new Logger writing to out
func NewWithWriter(out io.Writer) *Logger {
	emojis := runtime.GOOS != "windows"

	// disable color for CI
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		emojis = false
		gchalk.SetLevel(gchalk.LevelNone)
	}
	return &Logger{out: out, emojis: emojis}
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// we don't use l.println here, because step headlines should have no indentation
	fmt.Fprintln(l.out, text)
}
