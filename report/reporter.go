package report

import (
	"errors"
	"io"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user.  The reporter respects its log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different reporting method calls.
	m sync.Mutex

	// The output all messages are written to.
	out io.Writer

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Whether pterm styling should be applied to output.
	color bool

	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user (default).
	LogLevelVerbose        // Displays all compilation messages to the user.
)

// ParseLogLevel converts a log level name into its enumerated value.
func ParseLogLevel(name string) (int, bool) {
	switch name {
	case "silent":
		return LogLevelSilent, true
	case "error":
		return LogLevelError, true
	case "warn":
		return LogLevelWarn, true
	case "verbose":
		return LogLevelVerbose, true
	}

	return 0, false
}

// NewReporter creates a new reporter writing to out.
func NewReporter(out io.Writer, logLevel int, color bool) *Reporter {
	return &Reporter{
		out:      out,
		logLevel: logLevel,
		color:    color,
	}
}

// -----------------------------------------------------------------------------

// ReportCompileError reports a compilation error found in the source text src
// of the file at path.  If err is an ErrorList, every error in it is reported.
// Errors which are not compile errors are reported as standard errors.
func (r *Reporter) ReportCompileError(path string, src []byte, err error) {
	var el ErrorList
	var ce *CompileError
	if errors.As(err, &el) {
		for _, ce := range el {
			r.reportOne(path, src, ce)
		}
	} else if errors.As(err, &ce) {
		r.reportOne(path, src, ce)
	} else {
		r.ReportStdError(path, err)
	}
}

func (r *Reporter) reportOne(path string, src []byte, ce *CompileError) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel > LogLevelSilent {
		r.displayCompileMessage("error", path, src, ce.Span, ce.Kind.String()+": "+ce.Message)
	}
}

// ReportCompileWarning reports a compilation warning.
func (r *Reporter) ReportCompileWarning(path string, src []byte, span *TextSpan, msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.warningCount++
	if r.logLevel > LogLevelError {
		r.displayCompileMessage("warning", path, src, span, msg)
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func (r *Reporter) ReportStdError(path string, err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel > LogLevelSilent {
		r.displayStdError(path, err)
	}
}

// ReportFatal reports an error that stops the compiler before any source is
// processed: bad arguments, unreadable files, invalid configuration.  The
// caller decides the exit code.
func (r *Reporter) ReportFatal(msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel > LogLevelSilent {
		r.displayFatal(msg)
	}
}

// -----------------------------------------------------------------------------

// ReportCompileHeader displays the pre-compilation header.  Only shown at the
// verbose log level.
func (r *Reporter) ReportCompileHeader(version, inputPath string) {
	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		r.displayCompileHeader(version, inputPath)
	}
}

// ReportCompilationFinished displays the concluding message for compilation.
// Only shown at the verbose log level.
func (r *Reporter) ReportCompilationFinished(outputPath string) {
	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		r.displayCompilationFinished(outputPath)
	}
}

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount
}
