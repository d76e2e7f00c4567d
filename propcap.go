// Package propcap extracts a canonical lodging property record from a single
// rendered travel-listing page. Several partially-overlapping sources on the
// page (structured metadata blocks, embedded application state, meta tags,
// hyperlink attributes, rendered text) are read independently, normalized into
// a common shape, and merged under an explicit priority and conflict policy.
//
// This package contains domain types, field normalizers, and the merge engine
// following Ben Johnson's Standard Package Layout. Source readers and other
// implementations live in subdirectories named after their primary dependency
// (e.g., goquery/, trafilatura/, sqlite/).
package propcap
