package gen

import (
	"errors"
	"runtime"
)

// Defaults applied by NewConfig.
const (
	DefaultPackage = "tables"
	DefaultHeader  = "Code generated by pgqbgen. DO NOT EDIT."
)

// Config holds the code generation settings.
type Config struct {
	// Package is the name of the generated package. The registry file
	// is named after it.
	Package string
	// Target is the directory generated files are written to.
	Target string
	// Header is the comment placed at the top of every generated file.
	Header string
	// Workers bounds how many files render concurrently.
	Workers int
	// Force regenerates even when the schema snapshot is unchanged.
	Force bool
}

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the name of the generated package.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("WithPackage", pkg, "package name cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the directory generated files are written to.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("WithTarget", dir, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets the comment placed at the top of every generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		if header == "" {
			return NewConfigError("WithHeader", header, "header cannot be empty")
		}
		c.Header = header
		return nil
	}
}

// WithWorkers bounds how many files render concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("WithWorkers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithForce regenerates even when the schema snapshot is unchanged.
func WithForce() Option {
	return func(c *Config) error {
		c.Force = true
		return nil
	}
}

// Apply applies opts to c, stopping at the first error.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies every option and joins the errors it collects.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig returns a Config with defaults applied, then opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Package: DefaultPackage,
		Header:  DefaultHeader,
		Workers: runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
