package shader

import (
	"sync"
)

// Listener receives the committed configuration after every mutation.
type Listener func(Config)

// Store is the single source of truth for shader parameters.
//
// Mutations are serialized: each one commits a new Config and then invokes
// every listener synchronously, in registration order, before the next
// mutation starts. Listeners must not call mutating Store methods.
type Store struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	defaults  Config
	current   Config
	listeners []listenerEntry
	nextID    uint64
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// NewStore returns a store initialized to Defaults().
func NewStore() *Store {
	return NewStoreWithDefaults(Defaults())
}

// NewStoreWithDefaults returns a store whose initial and reset state is
// defaults. The value is copied; later changes to the caller's variable do not
// affect Reset.
func NewStoreWithDefaults(defaults Config) *Store {
	return &Store{defaults: defaults, current: defaults}
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Defaults returns a copy of the reset snapshot.
func (s *Store) Defaults() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, entry := range s.listeners {
				if entry.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Apply merges update into its group.
func (s *Store) Apply(update Update) {
	if update == nil {
		return
	}
	s.mutate(update.applyTo)
}

// SetGroup decodes a JSON object of partial values and merges it into group.
// Only decoding can fail; the values themselves are never range-checked.
func (s *Store) SetGroup(group Group, partial []byte) error {
	update, err := DecodeUpdate(group, partial)
	if err != nil {
		return err
	}
	s.Apply(update)
	return nil
}

// SetFlowField merges u into the flow-field group.
func (s *Store) SetFlowField(u FlowFieldUpdate) { s.Apply(u) }

// SetStripes merges u into the stripes group.
func (s *Store) SetStripes(u StripesUpdate) { s.Apply(u) }

// SetSimplexNoise merges u into the simplex-noise group.
func (s *Store) SetSimplexNoise(u SimplexNoiseUpdate) { s.Apply(u) }

// SetDither merges u into the dither group.
func (s *Store) SetDither(u DitherUpdate) { s.Apply(u) }

// SetImageTexture merges u into the image-texture group.
func (s *Store) SetImageTexture(u ImageTextureUpdate) { s.Apply(u) }

// SetChromaticAberration merges u into the chromatic-aberration group.
func (s *Store) SetChromaticAberration(u ChromaticAberrationUpdate) { s.Apply(u) }

// SetAspectRatio replaces the aspect-ratio selection.
func (s *Store) SetAspectRatio(value AspectRatio) {
	s.mutate(func(c Config) Config {
		c.AspectRatio = value
		return c
	})
}

// SetScale replaces the preview zoom factor.
func (s *Store) SetScale(value float64) {
	s.mutate(func(c Config) Config {
		c.Scale = value
		return c
	})
}

// Load replaces the whole configuration, for example with a preset.
func (s *Store) Load(config Config) {
	s.mutate(func(Config) Config {
		return config
	})
}

// Reset restores the defaults snapshot, discarding all edits.
func (s *Store) Reset() {
	s.mutate(func(Config) Config {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.defaults
	})
}

func (s *Store) mutate(change func(Config) Config) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	next := change(current)

	s.mu.Lock()
	s.current = next
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, entry := range listeners {
		entry.fn(next)
	}
}
