package briar

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Sinks bundles the collaborators the interpreter treats as external: a
// standard-output writer that receives only program output (print/printf),
// and up to three optional diagnostic writers. Nil diagnostic writers are
// valid and simply suppress that stream of output; the CORE never requires
// them to make progress.
type Sinks struct {
	Stdout io.Writer
	Trace io.Writer
	VarHistory io.Writer
	ErrorSink io.Writer
}

// diag wraps the three optional diagnostic sinks as narrow logrus loggers,
// one per stream. Using github.com/sirupsen/logrus here (rather than
// fmt.Fprintf directly against the io.Writer) follows
// evilmao-multi-currency-blockchain-wallet's convention of routing all
// diagnostic output through a structured logger even when the ultimate
// destination is a plain file; it buys leveled filtering and a consistent
// line format for free. Each logger is nil-safe: if the corresponding sink
// was not supplied, the logger discards output instead of writing to it.
type diag struct {
	trace *logrus.Logger
	varHist *logrus.Logger
	errLog *logrus.Logger
}

func newDiag(s Sinks) *diag {
	mk := func(w io.Writer) *logrus.Logger {
		l := logrus.New()
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
		if w == nil {
			l.SetOutput(io.Discard)
		} else {
			l.SetOutput(w)
		}
		return l
	}
	return &diag{
		trace: mk(s.Trace),
		varHist: mk(s.VarHistory),
		errLog: mk(s.ErrorSink),
	}
}

func (d *diag) tracef(format string, args ...interface{}) {
	d.trace.Infof(format, args...)
}

func (d *diag) varf(format string, args ...interface{}) {
	d.varHist.Infof(format, args...)
}

func (d *diag) errorf(format string, args ...interface{}) {
	d.errLog.Errorf(format, args...)
}
