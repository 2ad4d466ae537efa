// Package engine finds terminology in free text, shields it from an external
// translator behind placeholder tokens and restores the target terms after
// translation with the original capitalization. All functions are pure.
package engine
