package functions

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gridkit/cellcalc/logger"
	"github.com/gridkit/cellcalc/types"
)

// Category groups functions for registry queries.
type Category string

const (
	// CategoryAggregation covers the unconditional aggregates.
	CategoryAggregation Category = "aggregation"
	// CategoryConditional covers the *IF(S) families and SUMPRODUCT.
	CategoryConditional Category = "conditional"
	// CategoryMath covers the elementwise numeric functions.
	CategoryMath Category = "math"
	// CategoryVolatile covers functions re-evaluated on every pass.
	CategoryVolatile Category = "volatile"
	// CategoryCustom covers host-registered functions.
	CategoryCustom Category = "custom"
)

// ArgType declares what a positional argument accepts. The evaluator uses
// this for call validation and realization hints; entry points still verify
// at runtime.
type ArgType uint8

const (
	// ArgTypeAny accepts every realization.
	ArgTypeAny ArgType = iota
	// ArgTypeNumber is a scalar coercible to a number.
	ArgTypeNumber
	// ArgTypeRange is a reference, array or scalar standing in for one.
	ArgTypeRange
	// ArgTypeCriteria is a criteria predicate value.
	ArgTypeCriteria
)

// EntryFunc is a function body. It never returns a Go error: spreadsheet
// errors come back as error values.
type EntryFunc func(ctx FunctionContext, args []types.ArgValue) types.Value

// FunctionSpec is the static registry record for one function. Specs are
// created during setup and read-only afterwards.
type FunctionSpec struct {
	Name          string
	Category      Category
	Description   string
	MinArgs       int
	MaxArgs       int // -1 means unbounded
	Volatile      bool
	ThreadSafe    bool
	AcceptsArrays bool
	ArgTypes      []ArgType // by position; the last entry repeats
	Fn            EntryFunc
}

// ValidateArgCount checks an argument count against the spec's bounds.
func (s *FunctionSpec) ValidateArgCount(n int) error {
	if n < s.MinArgs {
		return fmt.Errorf("function %s requires at least %d arguments, got %d", s.Name, s.MinArgs, n)
	}
	if s.MaxArgs != -1 && n > s.MaxArgs {
		return fmt.Errorf("function %s accepts at most %d arguments, got %d", s.Name, s.MaxArgs, n)
	}
	return nil
}

// Registry stores function specs by lowercase name.
type Registry struct {
	mu         sync.RWMutex
	specs      map[string]*FunctionSpec
	categories map[Category][]*FunctionSpec
}

// Global registry instance holding the builtins.
var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:      make(map[string]*FunctionSpec),
		categories: make(map[Category][]*FunctionSpec),
	}
}

// Register adds a spec. Names are case-insensitive; duplicates are
// rejected.
func (r *Registry) Register(spec FunctionSpec) error {
	if spec.Name == "" || spec.Fn == nil {
		return fmt.Errorf("function spec requires a name and an entry point")
	}
	if spec.MaxArgs != -1 && spec.MaxArgs < spec.MinArgs {
		return fmt.Errorf("function %s has invalid arity bounds [%d, %d]", spec.Name, spec.MinArgs, spec.MaxArgs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(spec.Name)
	if _, exists := r.specs[name]; exists {
		return fmt.Errorf("function %s already registered", name)
	}

	s := spec
	r.specs[name] = &s
	r.categories[s.Category] = append(r.categories[s.Category], &s)
	return nil
}

// Get returns the spec for a name.
func (r *Registry) Get(name string) (*FunctionSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.specs[strings.ToLower(name)]
	return spec, exists
}

// GetByCategory returns the specs registered under a category.
func (r *Registry) GetByCategory(cat Category) []*FunctionSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.categories[cat]
}

// ListAll returns a snapshot of every registered spec.
func (r *Registry) ListAll() map[string]*FunctionSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*FunctionSpec, len(r.specs))
	for name, spec := range r.specs {
		result[name] = spec
	}
	return result
}

// Unregister removes a function by name.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(name)
	spec, exists := r.specs[name]
	if !exists {
		return false
	}

	delete(r.specs, name)

	if specs, ok := r.categories[spec.Category]; ok {
		for i, s := range specs {
			if strings.ToLower(s.Name) == name {
				r.categories[spec.Category] = append(specs[:i], specs[i+1:]...)
				break
			}
		}
	}

	return true
}

// Call validates arity and dispatches by name. Unknown names and arity
// violations are host-boundary Go errors; everything the function itself
// decides comes back in the Value.
func (r *Registry) Call(name string, ctx FunctionContext, args []types.ArgValue) (types.Value, error) {
	spec, exists := r.Get(name)
	if !exists {
		return types.Value{}, fmt.Errorf("function %s not found", name)
	}
	if err := spec.ValidateArgCount(len(args)); err != nil {
		return types.Value{}, fmt.Errorf("function %s validation failed: %w", name, err)
	}
	return spec.Fn(ctx, args), nil
}

// Global registration and dispatch helpers.

func Register(spec FunctionSpec) error {
	return globalRegistry.Register(spec)
}

func Get(name string) (*FunctionSpec, bool) {
	return globalRegistry.Get(name)
}

func GetByCategory(cat Category) []*FunctionSpec {
	return globalRegistry.GetByCategory(cat)
}

func ListAll() map[string]*FunctionSpec {
	return globalRegistry.ListAll()
}

func Unregister(name string) bool {
	return globalRegistry.Unregister(name)
}

func Call(name string, ctx FunctionContext, args []types.ArgValue) (types.Value, error) {
	return globalRegistry.Call(name, ctx, args)
}

func init() {
	var specs []FunctionSpec
	specs = append(specs, aggregationSpecs()...)
	specs = append(specs, conditionalSpecs()...)
	specs = append(specs, mathSpecs()...)
	for _, spec := range specs {
		if err := Register(spec); err != nil {
			logger.Error("builtin registration failed: %v", err)
		}
	}
}
