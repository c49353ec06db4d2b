package robotforth

import (
	"io"
	"math/rand/v2"

	"go.opentelemetry.io/otel/trace"

	"github.com/jcorbin/robotforth/internal/flushio"
)

// Option configures a Builder, and through it every Program it builds.
type Option interface{ apply(e *env) }

// Options combines any number of options into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	return res
}

var defaultOptions = Options(
	withOutput{io.Discard},
	WithKinds(DefaultKinds...),
	WithMailboxCapacity(DefaultMailboxCapacity),
	withLogMarkWidth(1),
)

type options []Option

func (opts options) apply(e *env) {
	for _, opt := range opts {
		opt.apply(e)
	}
}

// WithLogf enables trace logging through the given printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithOutput sets where the print word writes, replacing any prior output.
func WithOutput(w io.Writer) Option { return withOutput{w} }

// WithTee adds another print output alongside the current one.
func WithTee(w io.Writer) Option { return withTee{w} }

// WithSeed makes the random word deterministic.
func WithSeed(seed uint64) Option { return withSeed(seed) }

// WithKinds sets the known agent kinds, one mailbox per kind.
func WithKinds(kinds ...string) Option { return withKinds(kinds) }

// WithMailboxCapacity sets how many messages each mailbox holds.
func WithMailboxCapacity(n int) Option { return withCapacity(n) }

// WithTracer sets the tracer used for program runs.
func WithTracer(tracer trace.Tracer) Option { return withTracer{tracer} }

// WithDictionary replaces the builtin word table.
func WithDictionary(dict *Dictionary) Option { return withDictionary{dict} }

type withLogfn func(mess string, args ...interface{})
type withLogMarkWidth int
type withOutput struct{ io.Writer }
type withTee struct{ io.Writer }
type withSeed uint64
type withKinds []string
type withCapacity int
type withTracer struct{ trace.Tracer }
type withDictionary struct{ *Dictionary }

func (logfn withLogfn) apply(e *env)    { e.logfn = logfn }
func (n withLogMarkWidth) apply(e *env) { e.markWidth = int(n) }
func (kinds withKinds) apply(e *env)    { e.kinds = append([]string(nil), kinds...) }
func (n withCapacity) apply(e *env)     { e.capacity = int(n) }
func (opt withTracer) apply(e *env)     { e.tracer = opt.Tracer }
func (opt withDictionary) apply(e *env) { e.dict = opt.Dictionary }
func (seed withSeed) apply(e *env)      { e.rand = rand.New(rand.NewPCG(uint64(seed), uint64(seed))) }

func (o withOutput) apply(e *env) {
	if e.out != nil {
		e.out.Flush()
	}
	e.out = flushio.NewWriteFlusher(o.Writer)
}

func (o withTee) apply(e *env) {
	e.out = flushio.WriteFlushers(e.out, flushio.NewWriteFlusher(o.Writer))
}
