package internal

import "reflect"

// Uninitialized is the sentinel stored in a per-property source for a
// deleted or never-set key, distinguished from any legitimate client value.
type Uninitialized struct{}

var uninitializedValue any = Uninitialized{}

// Proxy adapts a plain map or slice into a graph of lazily-created
// per-property Source nodes. Go has no transparent-proxy facility, so
// property access goes through explicit Get/Set/Delete/Has/OwnKeys/Len
// rather than intercepted field syntax — an accessor interface standing in
// for a proxy the host language doesn't offer natively.
type Proxy struct {
	rt       *Runtime
	target   reflect.Value // the map or slice this proxy wraps
	growable bool          // target came from a pointer, so it can be resized in place
	isList   bool

	props     map[any]*Node
	children  map[any]*Proxy // nested proxies, one per eligible property
	structVer *Node          // bumped when a key appears/disappears (array length included)
}

// NewProxy wraps obj (a map, a slice/array, or a pointer to either) in a
// Proxy. A map or a pointer to a slice support growth on write; a bare
// slice value only supports writes within its current length, since
// extending it cannot be reflected back into the caller's variable without
// a pointer. Passing any other kind panics — callers are expected to check
// IsEligible first.
func (r *Runtime) NewProxy(obj any) *Proxy {
	v := reflect.ValueOf(obj)
	growable := false
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
		growable = true
	}

	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
	default:
		panic("reax: proxy target must be a map, slice, or array (or pointer to one)")
	}

	p := &Proxy{
		rt:       r,
		target:   v,
		growable: growable || v.Kind() == reflect.Map,
		isList:   v.Kind() == reflect.Slice || v.Kind() == reflect.Array,
		props:    make(map[any]*Node),
		children: make(map[any]*Proxy),
	}
	p.structVer = r.NewSignal(0, EqualsStrictIdentity)
	return p
}

// IsEligible reports whether v is a shape the proxy can wrap.
func IsEligible(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(*Proxy); ok {
		return false // already reactive
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// Raw returns the wrapped object, unwrapped.
func (p *Proxy) Raw() any { return p.target.Interface() }

// IsReactive reports whether v is a Proxy.
func IsReactive(v any) bool {
	_, ok := v.(*Proxy)
	return ok
}

func (p *Proxy) rawKeys() []any {
	if p.isList {
		keys := make([]any, p.target.Len())
		for i := range keys {
			keys[i] = i
		}
		return keys
	}

	keys := make([]any, 0, p.target.Len())
	for _, k := range p.target.MapKeys() {
		keys = append(keys, k.Interface())
	}
	return keys
}

func (p *Proxy) rawGet(key any) (any, bool) {
	if p.isList {
		i, ok := key.(int)
		if !ok || i < 0 || i >= p.target.Len() {
			return nil, false
		}
		return p.target.Index(i).Interface(), true
	}

	mv := p.target.MapIndex(reflect.ValueOf(key))
	if !mv.IsValid() {
		return nil, false
	}
	return mv.Interface(), true
}

// propSource returns the per-property source for key, lazily creating it
// (and, if the current raw value is itself eligible, a nested Proxy) the
// first time the key is touched. Creation runs untracked — a parent-context
// trick: instantiating intermediate nodes must not register them as a
// dependency of whatever reaction triggered the lazy create; only the
// caller's subsequent Read of the final source does.
func (p *Proxy) propSource(key any) *Node {
	if n, ok := p.props[key]; ok {
		return n
	}

	var n *Node
	p.rt.RunUntracked(func() {
		raw, exists := p.rawGet(key)
		if !exists {
			n = p.rt.NewSignal(uninitializedValue, EqualsStrictIdentity)
		} else if IsEligible(raw) {
			child := p.rt.NewProxy(raw)
			p.children[key] = child
			n = p.rt.NewSignal(any(child), EqualsStrictIdentity)
		} else {
			n = p.rt.NewSignal(raw, EqualsSafe)
		}
	})

	p.props[key] = n
	return n
}

// Get reads property key through the tracking path. Indexing past the end
// of a list, or a missing map key, is backed by a source holding the
// uninitialized sentinel and reads as nil.
func (p *Proxy) Get(key any) (any, error) {
	n := p.propSource(key)
	v, err := Read(n)
	if err != nil {
		return nil, err
	}
	if v == uninitializedValue {
		return nil, nil
	}
	return v, nil
}

// Child returns the nested Proxy for key, if that property currently holds
// an eligible (map/slice) value — without touching the tracking path
// itself (callers reading through to a grandchild call Get on it, which
// does track).
func (p *Proxy) Child(key any) (*Proxy, bool) {
	p.propSource(key) // ensure it has been created at least once
	child, ok := p.children[key]
	return child, ok
}

// Len reads the list length, tracking the structural-version source the
// way an array method would.
func (p *Proxy) Len() (int, error) {
	if _, err := Read(p.structVer); err != nil {
		return 0, err
	}
	return p.target.Len(), nil
}

// Has consumes the structural-version source and reports whether key is
// currently set (not deleted, not past the end of a list).
func (p *Proxy) Has(key any) (bool, error) {
	if _, err := Read(p.structVer); err != nil {
		return false, err
	}
	_, exists := p.rawGet(key)
	if !exists {
		return false, nil
	}
	if n, ok := p.props[key]; ok && n.value == uninitializedValue {
		return false, nil
	}
	return true, nil
}

// OwnKeys consumes the structural-version source and returns the current
// keys, filtering out any the proxy itself has marked deleted.
func (p *Proxy) OwnKeys() ([]any, error) {
	if _, err := Read(p.structVer); err != nil {
		return nil, err
	}

	keys := p.rawKeys()
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		if n, ok := p.props[k]; ok && n.value == uninitializedValue {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

// Set writes value to property key: write-through to both the
// per-property source and the backing object, wrapping value in a nested
// proxy first if it is itself eligible.
func (p *Proxy) Set(key any, value any) error {
	_, hadKey := p.rawGet(key)

	stored := value
	delete(p.children, key)
	if IsEligible(value) {
		child := p.rt.NewProxy(value)
		p.children[key] = child
		stored = any(child)
	}

	if err := p.writeBacking(key, value); err != nil {
		return err
	}

	n := p.propSource(key)
	if err := Write(n, stored); err != nil {
		return err
	}

	// For lists, growth already happened inside writeBacking; Len() reads
	// through structVer, so a grow-on-write counts as appearing a key too.
	if !hadKey {
		if err := Write(p.structVer, p.nextStructVer()); err != nil {
			return err
		}
	}
	return nil
}

// Delete marks key as uninitialized and bumps the structural-version
// source. The backing map entry is removed; list entries cannot be removed
// by index without renumbering, so Delete on a list marks the slot
// uninitialized in place. A list proxy has no length write: nothing it
// offers shrinks the backing list.
func (p *Proxy) Delete(key any) error {
	if p.isList {
		i, ok := key.(int)
		if !ok || i < 0 || i >= p.target.Len() {
			return nil
		}
	} else {
		mv := reflect.ValueOf(key)
		if p.target.MapIndex(mv).IsValid() {
			p.target.SetMapIndex(mv, reflect.Value{})
		}
	}

	n := p.propSource(key)
	delete(p.children, key)
	if err := Write(n, uninitializedValue); err != nil {
		return err
	}
	return Write(p.structVer, p.nextStructVer())
}

func (p *Proxy) nextStructVer() any {
	cur, _ := p.structVer.value.(int)
	return cur + 1
}

// writeBacking stores value into the backing map/slice directly (not
// through the tracking path — the tracking path is the per-property
// source, this just keeps Raw()/rawGet in sync).
func (p *Proxy) writeBacking(key any, value any) error {
	if p.isList {
		i, ok := key.(int)
		if !ok || i < 0 {
			return ErrInvalidSourceBinding
		}
		if i >= p.target.Len() {
			if !p.growable {
				return ErrInvalidSourceBinding
			}
			grown := reflect.MakeSlice(p.target.Type(), i+1, i+1)
			reflect.Copy(grown, p.target)
			p.target.Set(grown)
		}
		p.target.Index(i).Set(reflect.ValueOf(value))
		return nil
	}

	p.target.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(value))
	return nil
}
