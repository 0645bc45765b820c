package minioc

import "go.uber.org/zap"

// containerConfig holds configuration for a new container.
type containerConfig struct {
	logger *zap.Logger
}

// Option configures a container created by [New].
type Option func(*containerConfig)

// WithLogger sets the logger used for registration diagnostics. Entries are
// emitted at debug level. A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *containerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// registerConfig holds configuration for a singleton registration.
type registerConfig struct {
	key               string
	createImmediately bool
}

// RegisterOption configures a singleton registration.
type RegisterOption func(*registerConfig)

// WithKey qualifies the registration with a key. Resolving the identity with
// that key returns the keyed instance; resolving with an unknown key falls
// back to the unkeyed registration.
//
// Example:
//
//	minioc.RegisterSingle[*Database](c, minioc.WithKey("replica"))
//	replica, _ := minioc.GetInstanceKey[*Database](c, "replica")
func WithKey(key string) RegisterOption {
	return func(c *registerConfig) {
		c.key = key
	}
}

// CreateImmediately builds the singleton during registration instead of on
// first resolution.
func CreateImmediately() RegisterOption {
	return func(c *registerConfig) {
		c.createImmediately = true
	}
}

func applyRegisterOptions(opts []RegisterOption) *registerConfig {
	cfg := &registerConfig{key: defaultKey}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ConstructorOption configures a declared constructor.
type ConstructorOption interface {
	applyConstructor(*constructorInfo)
}

// constructorOptionFunc is a function adapter for ConstructorOption
type constructorOptionFunc func(*constructorInfo)

func (f constructorOptionFunc) applyConstructor(c *constructorInfo) { f(c) }

// Preferred marks the constructor as the one to use when a type declares
// more than one.
//
// Example:
//
//	c.DeclareConstructor(NewClientWithDefaults)
//	c.DeclareConstructor(NewClient, minioc.Preferred())
func Preferred() ConstructorOption {
	return constructorOptionFunc(func(c *constructorInfo) {
		c.preferred = true
	})
}

// Internal marks the constructor as not publicly invocable. The container
// never calls an internal constructor, so a type whose selected constructor
// is internal cannot be registered.
func Internal() ConstructorOption {
	return constructorOptionFunc(func(c *constructorInfo) {
		c.public = false
	})
}
