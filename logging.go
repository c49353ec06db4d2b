package robotforth

import (
	"fmt"
	"strings"
)

// logging provides optional marked trace lines; a nil logfn disables it.
// Marks in use:
//
//	: word definition
//	> prelude execution
//	. builtin execution
//	# run lifecycle
type logging struct {
	logfn     func(mess string, args ...interface{})
	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	if logfn == nil {
		return func() {}
	}
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) tracing() bool { return log.logfn != nil }

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
