// Package blob locates and decodes the tabular data blob that team pages embed
// in their client-side grid initialization call.
//
// Team schedule and roster pages do not render their rows as HTML. Instead the
// page script calls initDataGrid(...) with a JavaScript string holding a nested
// array literal. Locate finds that string and unescapes it, and Parse turns it
// into positional rows. Neither step treats absent or malformed data as fatal:
// callers get ErrNotFound or ErrMalformedPayload and degrade to an empty section.
package blob
