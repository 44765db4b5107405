package llmjson

// Option configures a repair or parse call.
type Option func(*options)

type options struct {
	ensureASCII  *bool
	skipFastPath bool
	indent       int
	maxDepth     int
}

const defaultMaxDepth = 512

func applyOptions(opts []Option) options {
	cfg := options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func ensureASCIIValue(cfg options) bool {
	if cfg.ensureASCII == nil {
		return true
	}
	return *cfg.ensureASCII
}

// WithEnsureASCII sets whether repaired output escapes non-ASCII
// characters to \uXXXX sequences. The default is true.
func WithEnsureASCII(value bool) Option {
	return func(o *options) {
		o.ensureASCII = &value
	}
}

// WithSkipFastPath disables the strict parse attempted before repair, so
// even well-formed input runs through the repair parser.
func WithSkipFastPath() Option {
	return func(o *options) {
		o.skipFastPath = true
	}
}

// WithIndent pretty-prints repaired output with n spaces per nesting
// level. Zero, the default, keeps the compact single-line form.
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = max(n, 0)
	}
}

// WithMaxDepth overrides the nesting depth limit guarding the parser
// against pathologically deep input. The default is 512.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
