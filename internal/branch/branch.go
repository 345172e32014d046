package branch

import "strings"

// Auto lets the installer pick whichever Discord branch it detects
const Auto = "auto"

var known = []string{Auto, "stable", "ptb", "canary"}

// Normalize trims and lowercases a branch name; empty means Auto
func Normalize(b string) string {
	b = strings.ToLower(strings.TrimSpace(b))
	if b == "" {
		return Auto
	}
	return b
}

// IsKnown returns true if the installer accepts b as a branch
func IsKnown(b string) bool {
	for _, k := range known {
		if b == k {
			return true
		}
	}
	return false
}

// Known returns the accepted branch names
func Known() []string {
	return append([]string(nil), known...)
}

// RepairArgs returns the installer arguments that repair branch b
func RepairArgs(b string) []string {
	return []string{"--repair", "--branch", Normalize(b)}
}
