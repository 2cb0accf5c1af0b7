// Package editscript replays YAML edit scripts against an engine.
//
// An edit script is a named list of steps. Each step names an operation
// and the fields it needs; lines and columns are 1-based:
//
//	name: add-header
//	steps:
//	  - op: goto
//	    line: 1
//	    column: 1
//	  - op: insert
//	    text: "// Code generated. DO NOT EDIT.\n"
//	  - op: replace_all
//	    query: foo
//	    replacement: bar
//	  - op: expect
//	    text: "..."
//
// Steps run in order and stop at the first failure.
package editscript
