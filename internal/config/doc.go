// Package config turns user-facing fondo options into a growth run.
//
// Options use the textual forms of the command line:
//
//	size       "WxH", e.g. "500x500"
//	positions  colon-separated "x,y" pairs, e.g. "0,0:50,50"
//	colours    colon-separated "r,g,b" triples or "#rrggbb" hex colours
//	kind       "0".."100" (stack with that shuffle chance), "tree",
//	           "treerev", anything else selects the random queue
//
// The same Options value backs the CLI flags, the MCP tool arguments and the
// HTTP query parameters.
package config
