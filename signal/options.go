package signal

import "github.com/hashicorp/go-hclog"

var nullLogger = hclog.NewNullLogger()

type options struct {
	logger hclog.Logger
	name   string
}

// Option configures a Signal created with New.
type Option func(*options)

// WithLogger sets the logger used for trace output about connects,
// disconnects and invocations.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName names the signal in log output.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
