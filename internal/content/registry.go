// Package content holds the authored game data: classes, skills, items and
// the blessing catalog. Classes register themselves in init() functions,
// letting the engine and CLI discover them without hardcoded dependencies.
package content

import (
	"fmt"
	"sort"
	"sync"
)

// ClassInfo contains metadata about a registered class.
type ClassInfo struct {
	ID    string
	Name  string
}

var (
	classes = make(map[string]Class)
	mu      sync.RWMutex
)

// RegisterClass adds a class to the registry. Typically called from an
// init() function. Panics if the ID is already taken.
func RegisterClass(c Class) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := classes[c.ID]; exists {
		panic(fmt.Sprintf("content: class %q already registered", c.ID))
	}
	classes[c.ID] = c
}

// ClassByID returns the class with the given ID.
func ClassByID(id string) (Class, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := classes[id]
	if !ok {
		return Class{}, fmt.Errorf("content: unknown class %q", id)
	}
	return c, nil
}

// ClassExists checks if a class with the given ID is registered.
func ClassExists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := classes[id]
	return ok
}

// ListClasses returns information about all registered classes, sorted by ID.
func ListClasses() []ClassInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ClassInfo, 0, len(classes))
	for id, c := range classes {
		result = append(result, ClassInfo{ID: id, Name: c.Name})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// SkillByID looks a skill up across all registered classes.
func SkillByID(id string) (Skill, error) {
	mu.RLock()
	defer mu.RUnlock()

	for _, c := range classes {
		for _, s := range c.Skills {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return Skill{}, fmt.Errorf("content: unknown skill %q", id)
}
