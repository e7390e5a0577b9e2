package exparray

import "github.com/datatrails/go-datatrails-common/logger"

// DefaultMaxLength is the maximum number of elements accepted
// in each dimension, protecting against corrupted or hostile
// length fields.
const DefaultMaxLength = 1_000_000

// Options configures an [Array].
type Options struct {
	// forwarded to the element constructor
	template any
	argument any

	maxLength int

	// optional, used for debug traces
	log logger.Logger
}

type Option func(*Options)

// WithTemplate sets the type template given to the element constructor.
func WithTemplate(template any) Option {
	return func(o *Options) { o.template = template }
}

// WithArgument sets the initial type argument given to the element
// constructor. It is replaced by the argument provided to [Array.Read].
func WithArgument(arg any) Option {
	return func(o *Options) { o.argument = arg }
}

// WithMaxLength lowers the maximum length accepted in each dimension.
// Values above [DefaultMaxLength] are clamped to it.
func WithMaxLength(n int) Option {
	return func(o *Options) { o.maxLength = min(n, DefaultMaxLength) }
}

// WithLogger enables debug traces for decoding, resizing
// and link resolution.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.log = log }
}

func newOptions(opts []Option) Options {
	options := Options{maxLength: DefaultMaxLength}
	for _, o := range opts {
		o(&options)
	}
	return options
}
