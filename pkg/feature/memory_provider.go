package feature

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryProvider keeps flags in memory. Flags are seeded from configuration
// at startup.
type MemoryProvider struct {
	mu    sync.RWMutex
	flags map[string]*Flag
	now   func() time.Time
}

// NewMemoryProvider creates a provider seeded with flags.
func NewMemoryProvider(flags ...*Flag) (*MemoryProvider, error) {
	m := &MemoryProvider{flags: make(map[string]*Flag), now: time.Now}
	for _, f := range flags {
		if f == nil {
			continue
		}
		if err := m.SetFlag(context.Background(), f); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// IsEnabled reports whether flagName is enabled and its strategy, if any,
// applies to ctx.
func (m *MemoryProvider) IsEnabled(ctx context.Context, flagName string) (bool, error) {
	m.mu.RLock()
	flag, ok := m.flags[flagName]
	m.mu.RUnlock()

	if !ok {
		return false, ErrFlagNotFound
	}
	if !flag.Enabled {
		return false, nil
	}
	if flag.Strategy == nil {
		return true, nil
	}
	return flag.Strategy.Evaluate(ctx)
}

// GetFlag returns a copy of the flag.
func (m *MemoryProvider) GetFlag(_ context.Context, flagName string) (*Flag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flag, ok := m.flags[flagName]
	if !ok {
		return nil, ErrFlagNotFound
	}
	flagCopy := *flag
	return &flagCopy, nil
}

// SetFlag stores a copy of flag.
func (m *MemoryProvider) SetFlag(_ context.Context, flag *Flag) error {
	if flag == nil {
		return errors.Join(ErrInvalidFlag, errors.New("flag cannot be nil"))
	}
	if strings.TrimSpace(flag.Name) == "" {
		return errors.Join(ErrInvalidFlag, errors.New("flag name cannot be empty"))
	}

	flagCopy := *flag
	flagCopy.UpdatedAt = m.now()

	m.mu.Lock()
	m.flags[flag.Name] = &flagCopy
	m.mu.Unlock()
	return nil
}

// ListFlags returns copies of all flags sorted by name.
func (m *MemoryProvider) ListFlags(_ context.Context) ([]*Flag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Flag, 0, len(m.flags))
	for _, f := range m.flags {
		flagCopy := *f
		out = append(out, &flagCopy)
	}
	slices.SortFunc(out, func(a, b *Flag) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
