// Package render is the only writer of presentation output. It turns probe
// results, job lists and submission outcomes into text for the CLI and into
// an HTML page for the console. Nothing here performs I/O against the API.
package render
