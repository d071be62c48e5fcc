// Package discovery turns a source location into the run's candidate set. A
// directory source is walked recursively; an archive source is delegated to
// the extractor so its entries flow through the pipeline as temp files that
// remember their original names.
package discovery
