// Package grabdoc pulls structured content from URLs into local,
// per-resource output directories. Given a URL it detects the source
// platform (newsletter, video site, document host, generic web page),
// dispatches to a matching adapter from an ordered registry, and writes
// extracted markdown, transcripts, and downloaded files alongside a
// metadata.json document. Links discovered inside an article are
// classified and dispatched recursively through the same registry, and
// consumer-supplied hooks run after each successful extraction.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, trafilatura/, ytdlp/).
package grabdoc
