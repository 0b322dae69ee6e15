package options

import (
	"fmt"
	"sync"
)

// Dict is the dynamic typed value store. Reads of parameters that were never
// registered panic: registration always precedes reads, so a miss is a
// programming error, not user input.
//
// A Dict may have named sub-dicts (per-player contexts). Reads on a sub-dict
// fall back to the parent when the key was not overridden locally.
type Dict struct {
	mu     sync.RWMutex
	parent *Dict
	values map[string]any
	subs   map[string]*Dict
}

func NewDict() *Dict {
	return &Dict{values: make(map[string]any)}
}

// Sub returns the named sub-dict, creating it on first use.
func (d *Dict) Sub(name string) *Dict {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subs == nil {
		d.subs = make(map[string]*Dict)
	}
	sub, ok := d.subs[name]
	if !ok {
		sub = &Dict{parent: d, values: make(map[string]any)}
		d.subs[name] = sub
	}
	return sub
}

func (d *Dict) set(key string, value any) {
	d.mu.Lock()
	d.values[key] = value
	d.mu.Unlock()
}

func (d *Dict) lookup(key string) (any, bool) {
	d.mu.RLock()
	v, ok := d.values[key]
	d.mu.RUnlock()
	if !ok && d.parent != nil {
		return d.parent.lookup(key)
	}
	return v, ok
}

func (d *Dict) get(id ID) any {
	v, ok := d.lookup(id.Flag)
	if !ok {
		panic(fmt.Sprintf("option %q read before registration", id.Flag))
	}
	return v
}

func (d *Dict) GetBool(id ID) bool {
	return d.get(id).(bool)
}

func (d *Dict) GetInt(id ID) int {
	return d.get(id).(int)
}

func (d *Dict) GetFloat(id ID) float64 {
	return d.get(id).(float64)
}

func (d *Dict) GetString(id ID) string {
	return d.get(id).(string)
}
