// Package relocate executes the filesystem mutation for planned items: parent
// directory creation, dry-run simulation, conflict policy, and the copy or
// move itself. Every error is caught at the item boundary and reported as
// that item's outcome so one bad file never stops the rest of the run.
package relocate
