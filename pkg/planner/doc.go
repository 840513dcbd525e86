// Package planner decides what a photosnap run will do before any resource
// is fetched.
//
// Plan walks a fixed sequence of states:
//
//	Idle -> ModeResolved -> PathsResolved -> CapabilityChecked ->
//	BaseResolved -> CompareDateResolved -> Ready
//
// A failure at any step stops the walk and returns a coded error whose exit
// code tells the user which pre-flight check failed. Nothing is written to
// the destination before Ready.
//
// Snapshot folder names are timestamps rendered with a Unicode date pattern
// such as "yyyy-MM-dd_HH-mm-ss"; Layout translates such patterns into Go
// reference layouts.
package planner
