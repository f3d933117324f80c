// Package schemas embeds the JSON Schemas that external data sources are
// validated against before any of it reaches the matching core.
package schemas

import _ "embed"

// JobCorpus is the schema for corpus ingest files: an array of
// {id, title, company, description, ...metadata} records.
//
//go:embed job_corpus.schema.json
var JobCorpus []byte
