// Package script runs Lua macros against an engine.
//
// Macros run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The engine is exposed as the global "editor"
// table (also available through require("editor")). Positions seen from
// Lua are 1-based.
//
//	editor.move("line_end")
//	editor.insert(";")
//	for _, m in ipairs(editor.find("TODO")) do
//	    print(m.line, m.col)
//	end
//
// A run is recorded as a single undo step. If the script fails, every edit
// it made is reverted.
package script
