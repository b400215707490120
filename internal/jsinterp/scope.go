package jsinterp

// Scope is a chain of name -> Value mappings, innermost first. It ports
// LocalNameSpace(ChainMap): lookup walks the chain and
// returns Undefined (never an error) on miss; assignment rewrites the
// scope that already defines the name, or creates a binding in the
// innermost scope.
type Scope struct {
	maps []map[string]Value // maps[0] is innermost
}

// NewScope creates a scope chain with a single, empty innermost frame.
func NewScope() *Scope {
	return &Scope{maps: []map[string]Value{{}}}
}

// Child returns a new scope with a fresh innermost frame layered in front
// of s, used to enter a function call or a catch block.
func (s *Scope) Child() *Scope {
	maps := make([]map[string]Value, 0, len(s.maps)+1)
	maps = append(maps, map[string]Value{})
	maps = append(maps, s.maps...)
	return &Scope{maps: maps}
}

// Get returns the value bound to name, or Undefined if unbound anywhere in
// the chain. Failed lookup is never an error.
func (s *Scope) Get(name string) Value {
	for _, m := range s.maps {
		if v, ok := m[name]; ok {
			return v
		}
	}
	return Undefined
}

// Lookup is like Get but also reports whether name is bound anywhere.
func (s *Scope) Lookup(name string) (Value, bool) {
	for _, m := range s.maps {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	return Undefined, false
}

// Set writes name in the scope that already defines it (write-through), or
// creates the binding in the innermost scope if undefined anywhere.
func (s *Scope) Set(name string, v Value) {
	for _, m := range s.maps {
		if _, ok := m[name]; ok {
			m[name] = v
			return
		}
	}
	s.maps[0][name] = v
}

// Declare always binds name in the innermost scope, used for var/let/const
// introductions so a declaration never shadow-writes an outer scope's
// binding of the same name it is meant to be reintroducing.
func (s *Scope) Declare(name string, v Value) {
	s.maps[0][name] = v
}

// Snapshot returns the current chain of maps as-is (no copy), used when a
// closure captures "the current global-stack snapshot": later
// writes through the captured chain are still visible to the closure,
// matching "Closure capture".
func (s *Scope) Snapshot() []map[string]Value {
	return s.maps
}

// FromSnapshot rebuilds a Scope from a captured chain, sharing its maps
// as-is; it pushes no frame of its own.
func FromSnapshot(maps []map[string]Value) *Scope {
	return &Scope{maps: maps}
}
