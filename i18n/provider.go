package i18n

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/stockreport/internal/logger"
)

// Translator is the read side of a Provider handed to renderers.
type Translator interface {
	Language() Language
	T(key string) string
}

// Provider holds the active display language. One goroutine changes it
// through SetLanguage while any number of readers call T.
type Provider struct {
	mu    sync.RWMutex
	lang  Language
	store Store
}

// NewProvider starts at Default and adopts the language persisted in store
// when it is supported. A nil store keeps the choice in memory only.
func NewProvider(ctx context.Context, store Store) *Provider {
	if store == nil {
		store = &MemoryStore{}
	}
	p := &Provider{lang: Default, store: store}

	saved, err := store.Load()
	switch {
	case err != nil:
		logger.Warn(ctx, "language preference unreadable, using default", "error", err, "language", Default)
	case saved == "":
	case Language(saved).Valid():
		p.lang = Language(saved)
	default:
		logger.Warn(ctx, "ignoring unsupported saved language", "saved", saved, "language", Default)
	}
	return p
}

// Language returns the active language.
func (p *Provider) Language() Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// SetLanguage switches the active language and persists it. The in-memory
// switch happens even when the store write fails; the error is returned.
func (p *Provider) SetLanguage(lang Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}

	p.mu.Lock()
	p.lang = lang
	p.mu.Unlock()

	if err := p.store.Save(string(lang)); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}

// T returns the localized string for key, or key when it is not defined.
func (p *Provider) T(key string) string {
	return Lookup(p.Language(), key)
}

// Static returns a Translator pinned to lang with no backing store. The
// server uses it for one-off ?lang= renders that must not touch the
// persisted choice.
func Static(lang Language) Translator {
	return fixed(lang)
}

type fixed Language

func (f fixed) Language() Language  { return Language(f) }
func (f fixed) T(key string) string { return Lookup(Language(f), key) }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the provider stored in ctx. Calling it on a context
// that never went through NewContext is a wiring bug and panics.
func FromContext(ctx context.Context) *Provider {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	if !ok || p == nil {
		panic("i18n: FromContext called outside a provider scope")
	}
	return p
}

// T translates key with the provider carried by ctx.
func T(ctx context.Context, key string) string {
	return FromContext(ctx).T(key)
}
