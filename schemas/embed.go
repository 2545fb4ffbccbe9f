// Package schemas holds the JSON Schemas describing the scraper's JSON output.
package schemas

import _ "embed"

// ResolutionSet is the schema for the JSON output document.
//
//go:embed resolution_set.schema.json
var ResolutionSet string

// ResolutionSetFile is the schema's file name within this directory.
const ResolutionSetFile = "resolution_set.schema.json"
