// Package config provides configuration for Xylux.
//
// Settings live in a TOML file with one table per concern:
//
//	[history]
//	max_entries = 1000
//	merge_similar = true
//
//	[editor]
//	page_size = 20
//	tab_width = 4
//	encoding = "utf-8"
//	line_ending = ""   # keep what the file uses
//
//	[search]
//	case_sensitive = true
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[script]
//	instruction_limit = 10000000
//	timeout_ms = 5000
//
// Load decodes a file strictly, rejecting unknown keys with a ParseError.
// NewViper layers built-in defaults, the file and XYLUX_* environment
// variables (XYLUX_EDITOR_TAB_SIZE overrides editor.tab_size) for the
// command line front end.
//
// A missing file is not an error; defaults apply.
package config
