package reax

import (
	"reflect"

	"github.com/AnatoleLucet/reax/internal"
)

// Proxy adapts a plain map or slice/array into a graph of lazily-created
// per-property sources: mutating path a.b.c invalidates exactly the
// reactions that read that path, plus readers of an ancestor's structural
// version when a key appears or disappears.
type Proxy struct {
	p *internal.Proxy
}

// NewProxy wraps obj. obj must be a map, a slice/array, or a pointer to
// one (only the pointer forms, plus maps, can grow on write); anything
// else returns ErrInvalidSourceBinding.
func NewProxy(obj any) (*Proxy, error) {
	if !proxyEligible(obj) {
		return nil, ErrInvalidSourceBinding
	}
	return &Proxy{p: internal.GetRuntime().NewProxy(obj)}, nil
}

func proxyEligible(obj any) bool {
	if obj == nil {
		return false
	}
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// Get reads property key through the tracking path. A nested eligible
// value comes back as a *Proxy rather than the raw map/slice. Reading a
// missing map key, or a list index past its length, returns nil.
func (p *Proxy) Get(key any) (any, error) {
	v, err := p.p.Get(key)
	if err != nil {
		return nil, err
	}
	if child, ok := v.(*internal.Proxy); ok {
		return &Proxy{p: child}, nil
	}
	return v, nil
}

// Set writes value to property key, write-through to both the
// per-property source and the backing object (wrapping value in a nested
// Proxy first if it is itself an eligible map/slice/array).
func (p *Proxy) Set(key any, value any) error {
	if inner, ok := value.(*Proxy); ok {
		value = inner.p.Raw()
	}
	return p.p.Set(key, value)
}

// Delete marks key as uninitialized and bumps the structural-version
// source, so Has/OwnKeys readers re-run.
func (p *Proxy) Delete(key any) error { return p.p.Delete(key) }

// Has consumes the structural-version source and reports whether key is
// currently set.
func (p *Proxy) Has(key any) (bool, error) { return p.p.Has(key) }

// OwnKeys consumes the structural-version source and returns the current
// keys, filtering out deleted ones.
func (p *Proxy) OwnKeys() ([]any, error) { return p.p.OwnKeys() }

// Len reads the list length, tracking the structural-version source.
func (p *Proxy) Len() (int, error) { return p.p.Len() }

// Child returns the nested Proxy for key without going through the
// tracking path itself (callers reading through to a grandchild call Get
// on it, which does track).
func (p *Proxy) Child(key any) (*Proxy, bool) {
	c, ok := p.p.Child(key)
	if !ok {
		return nil, false
	}
	return &Proxy{p: c}, true
}

// ToRaw returns the object wrapped by x if x is a *Proxy, unwrapping
// nested proxies only one level; x itself is returned unchanged otherwise.
func ToRaw(x any) any {
	if p, ok := x.(*Proxy); ok {
		return p.p.Raw()
	}
	return x
}

// IsReactive reports whether x is a *Proxy.
func IsReactive(x any) bool {
	_, ok := x.(*Proxy)
	return ok
}
