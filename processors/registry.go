package processors

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps transform names to their session-long processor instances.
// Instances are created lazily on first lookup and reused afterwards, so
// parameter state survives reselection in the GUI.
type Registry struct {
	mu        sync.Mutex
	factories map[string]func() Processor
	instances map[string]Processor
}

// NewRegistry creates a registry holding the full closed processor set.
func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]func() Processor{
			"rotation":         func() Processor { return NewRotationProcessor() },
			"crop":             func() Processor { return NewCropProcessor() },
			"flip":             func() Processor { return NewFlipProcessor() },
			"lowpass":          func() Processor { return NewLowpassProcessor() },
			"highpass":         func() Processor { return NewHighpassProcessor() },
			"fourier":          func() Processor { return NewFourierProcessor() },
			"object_detection": func() Processor { return NewObjectDetectionProcessor() },
		},
		instances: make(map[string]Processor),
	}
}

// Get returns the processor registered under name, instantiating it on
// first use. Unknown names fail with ErrUnknownProcessor.
func (r *Registry) Get(name string) (Processor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if instance, ok := r.instances[name]; ok {
		return instance, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
	}

	instance := factory()
	r.instances[name] = instance
	return instance, nil
}

// Reset discards the session instance registered under name so the next
// Get rebuilds it with its factory defaults. Unknown names fail with
// ErrUnknownProcessor.
func (r *Registry) Reset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
	}
	delete(r.instances, name)
	return nil
}

// Names lists every registered processor name in stable order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
