// Package registry maps file names to the checkers responsible for them.
//
// Checkers come from modules compiled into the binary. Each module's Register
// method adds either an exact-name checker, which inspects one fixed file on
// every run, or a tag handler, which is offered every other file named by
// the style and accepts the ones whose tags it knows.
//
// A run (see Plan) checks the exact-name checkers first, in registration
// order, then the style's other files in ascending name order. Handler
// registration order only decides which handler gets a file when several
// accept its tags.
//
// The registry is validated once at start-up so that two checkers never
// share a file name, a handler name or an error code range.
package registry
