/*
Package errors implements the error handling used across this repository.

Each returned error must wrap one of the registered root errors. Wrapping
keeps the root cause testable with the Is method while allowing each layer
to attach its own description. The first Wrap call attaches a stack trace,
so the origin of every failure can be recovered for debugging.
*/
package errors
