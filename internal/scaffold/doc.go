// Package scaffold creates new machine templates. A machine is either copied
// verbatim from a named template directory or generated from the embedded
// default file set (instructions, permission settings, MCP manifest, README,
// and the bundled self-update skill). Default generation is all-or-nothing:
// a failure removes the partially written machine directory.
package scaffold
