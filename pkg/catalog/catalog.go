// Package catalog holds the node type registry: a lookup table mapping
// node type tags to the expectations a well-formed node of that type
// should meet. The catalog is open-world; a type absent from the table is
// never an error, downstream consumers treat the miss leniently.
package catalog

import "sync"

// Schema describes what a node of a given type is expected to carry.
type Schema struct {
	// Required lists parameter keys that must be present.
	Required []string
	// Optional lists parameter keys the type understands but does not demand.
	Optional []string
	// RequiresCredential marks types that cannot operate without a
	// credential binding.
	RequiresCredential bool
	// CredentialKind is the exact credential key the binding must use.
	CredentialKind string
	// ErrorHandlingRecommended marks types whose failures cascade, so a
	// missing error-policy is worth a warning.
	ErrorHandlingRecommended bool
	// TypicalParameters is a ready-to-use parameter bag for the type, used
	// by repair passes to replace empty bags with something importable.
	TypicalParameters map[string]any
}

// Catalog is the registry of known node type schemas. Safe for concurrent
// use; lookups vastly outnumber registrations.
type Catalog struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// New creates an empty catalog. Most callers want Default instead.
func New() *Catalog {
	return &Catalog{schemas: make(map[string]Schema)}
}

// Register adds or replaces the schema for a type tag.
func (c *Catalog) Register(typeTag string, s Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[typeTag] = s
}

// Lookup returns the schema for a type tag. The second result is false
// for unknown types; callers must degrade to a warning, not an error.
func (c *Catalog) Lookup(typeTag string) (Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[typeTag]
	return s, ok
}

// RequiresCredential reports whether the type demands a credential
// binding. Unknown types do not.
func (c *Catalog) RequiresCredential(typeTag string) bool {
	s, ok := c.Lookup(typeTag)
	return ok && s.RequiresCredential
}

// CredentialKind returns the credential key the type expects, or "" when
// the type is unknown or credential-free.
func (c *Catalog) CredentialKind(typeTag string) string {
	s, ok := c.Lookup(typeTag)
	if !ok {
		return ""
	}
	return s.CredentialKind
}

// ErrorHandlingRecommended reports whether a node of this type should
// carry an error-policy.
func (c *Catalog) ErrorHandlingRecommended(typeTag string) bool {
	s, ok := c.Lookup(typeTag)
	return ok && s.ErrorHandlingRecommended
}

// TypicalParameters returns a fresh copy of the type's canned parameter
// bag, or nil when none is registered.
func (c *Catalog) TypicalParameters(typeTag string) map[string]any {
	s, ok := c.Lookup(typeTag)
	if !ok || s.TypicalParameters == nil {
		return nil
	}
	params := make(map[string]any, len(s.TypicalParameters))
	for k, v := range s.TypicalParameters {
		params[k] = v
	}
	return params
}
