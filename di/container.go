package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/kbukum/ssot/logger"
)

// RegistrationMode determines how a component should be resolved
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // Initialize immediately on registration
	Lazy                              // Initialize on first resolve
	Singleton                         // Pre-created instance
)

func (m RegistrationMode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Container defines the interface for a dependency injection container
type Container interface {
	Register(key string, constructor any) error
	RegisterEager(key string, constructor any) error
	RegisterSingleton(key string, instance any) error
	Resolve(key string) (any, error)
	Registrations() []RegistrationInfo
	Close() error
}

// RegistrationInfo describes a registered component for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	Initialized bool
}

// ErrNotRegistered is returned when resolving an unknown key.
var ErrNotRegistered = stderrors.New("component not registered")

type registration struct {
	key         string
	constructor any
	mode        RegistrationMode
	once        sync.Once
	instance    any
	err         error
	initialized bool
}

// UnifiedContainer is the default Container.
type UnifiedContainer struct {
	components map[string]*registration
	order      []string
	mutex      sync.RWMutex
}

// NewContainer creates an empty container.
func NewContainer() *UnifiedContainer {
	return &UnifiedContainer{components: make(map[string]*registration)}
}

// Register registers a lazy component, built on first Resolve.
//
// The constructor is a function taking nothing, a context.Context or the
// Container, and returning the instance or (instance, error).
func (c *UnifiedContainer) Register(key string, constructor any) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	c.put(&registration{key: key, constructor: constructor, mode: Lazy})
	return nil
}

// RegisterEager registers a component and builds it immediately.
func (c *UnifiedContainer) RegisterEager(key string, constructor any) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	reg := &registration{key: key, constructor: constructor, mode: Eager}
	if _, err := c.build(reg); err != nil {
		return fmt.Errorf("failed to initialize eager component '%s': %w", key, err)
	}
	c.put(reg)
	return nil
}

// RegisterSingleton registers a pre-created instance.
func (c *UnifiedContainer) RegisterSingleton(key string, instance any) error {
	reg := &registration{key: key, mode: Singleton, instance: instance, initialized: true}
	reg.once.Do(func() {})
	c.put(reg)
	return nil
}

func (c *UnifiedContainer) put(reg *registration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, exists := c.components[reg.key]; !exists {
		c.order = append(c.order, reg.key)
	}
	c.components[reg.key] = reg
}

// Resolve returns the instance registered under key.
func (c *UnifiedContainer) Resolve(key string) (any, error) {
	c.mutex.RLock()
	reg, exists := c.components[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	return c.build(reg)
}

// build runs the constructor once and caches the outcome.
func (c *UnifiedContainer) build(reg *registration) (any, error) {
	reg.once.Do(func() {
		reg.instance, reg.err = c.callConstructor(reg.constructor)
		reg.initialized = reg.err == nil
		if reg.err != nil {
			logger.Debug("Component initialization failed", logger.Fields(
				logger.FieldComponent, reg.key,
				logger.FieldError, reg.err.Error(),
			))
			return
		}
		logger.Debug("Component initialized", logger.Fields(logger.FieldComponent, reg.key))
	})
	return reg.instance, reg.err
}

func checkConstructor(constructor any) error {
	fn := reflect.TypeOf(constructor)
	if fn == nil || fn.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function")
	}
	if fn.NumIn() > 1 {
		return fmt.Errorf("constructor takes at most one argument")
	}
	if fn.NumOut() < 1 || fn.NumOut() > 2 {
		return fmt.Errorf("constructor must return either (instance) or (instance, error)")
	}
	return nil
}

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

func (c *UnifiedContainer) callConstructor(constructor any) (any, error) {
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()

	var args []reflect.Value
	if fnType.NumIn() == 1 {
		switch in := fnType.In(0); {
		case in == contextType:
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		case in == reflect.TypeOf(c) || (in.Kind() == reflect.Interface && reflect.TypeOf(c).Implements(in)):
			args = []reflect.Value{reflect.ValueOf(c)}
		default:
			return nil, fmt.Errorf("unsupported constructor argument %s", in)
		}
	}

	results := fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		err, ok := results[1].Interface().(error)
		if !ok {
			return nil, fmt.Errorf("constructor second result must be an error")
		}
		return nil, err
	}
	return results[0].Interface(), nil
}

// Registrations returns info about all registered components in registration order.
func (c *UnifiedContainer) Registrations() []RegistrationInfo {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.order))
	for _, key := range c.order {
		reg := c.components[key]
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        reg.mode,
			Initialized: reg.initialized,
		})
	}
	return result
}

// Close closes every initialized component implementing io.Closer, newest
// first, and joins their errors.
func (c *UnifiedContainer) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var errs []error
	for _, key := range slices.Backward(c.order) {
		reg := c.components[key]
		if !reg.initialized || reg.instance == nil {
			continue
		}
		if closer, ok := reg.instance.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", key, err))
			}
		}
	}
	return stderrors.Join(errs...)
}
