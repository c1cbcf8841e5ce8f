package config

// Format of the sentence source file.
// ENUM(auto, text, csv)
type SourceFormat int

// How lines of a text source are grouped into entries.
// ENUM(fixed, blank)
type Grouping int

// How already published entries are excluded from selection.
// ENUM(hash, queue)
type DedupPolicy int

// Storage used for the hash ledger.
// ENUM(json, sqlite)
type LedgerFormat int

// How generated content is located in the index page.
// ENUM(marker, selector)
type AnchorKind int

// When archive copy of the page is taken relative to page update.
// ENUM(before, after)
type ArchiveOrder int

// How navigation menu is maintained.
// ENUM(patch, rebuild)
type MenuMode int
