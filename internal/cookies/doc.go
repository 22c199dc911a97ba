// Package cookies persists browser cookie sessions per streaming platform.
//
// Each platform gets one JSON file (an array of browser-model cookie records)
// inside a shared directory. Reads are permissive: a missing or corrupt file
// yields ErrNotFound so callers fall back to a fresh login instead of
// crashing. Writes are atomic via write-then-rename.
package cookies
