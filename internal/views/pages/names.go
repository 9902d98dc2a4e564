package pages

import (
	"fmt"
	"strings"
)

const untitledName = "Masa sin nombre"

// NextUntitledName returns a default name that does not collide with existing names.
func NextUntitledName(existing []string) string {
	used := usedNames(existing)
	if _, ok := used[strings.ToLower(untitledName)]; !ok {
		return untitledName
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s %d", untitledName, i)
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

// NextCopiedName generates a non-conflicting name when duplicating a record.
func NextCopiedName(existing []string, base string) string {
	baseTrim := strings.TrimSpace(base)
	if baseTrim == "" {
		return NextUntitledName(existing)
	}

	used := usedNames(existing)
	candidate := fmt.Sprintf("%s (Copy)", baseTrim)
	if _, ok := used[strings.ToLower(candidate)]; !ok {
		return candidate
	}

	for i := 2; ; i++ {
		candidate = fmt.Sprintf("%s (Copy %d)", baseTrim, i)
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

func usedNames(existing []string) map[string]struct{} {
	used := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		used[strings.ToLower(name)] = struct{}{}
	}
	return used
}
