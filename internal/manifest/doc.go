// Package manifest handles parsing and validation of the machine's
// configuration documents: the permission settings file, the MCP server
// manifest, and the YAML frontmatter of bundled skills. Settings and MCP
// documents are checked against JSON Schemas embedded from the schema/
// directory.
package manifest
