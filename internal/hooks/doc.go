// Package hooks discovers directory-based hook plugins and runs them as
// core.LifecycleHooks around a scheduled run: one call before the run
// starts, one after it ends, and one before/after each node executes.
//
// A hook plugin is a directory containing a manifest.json naming which of
// the four lifecycle points it participates in. Hooks never influence
// scheduling decisions or node results; they observe and log.
package hooks
