// Package io imports photos and name lists and exports rosters.
//
// # Photo folders
//
// [ImportFolder] reads every .jpg, .jpeg and .png file of a directory in
// name order, crops each to its centered square and returns one entity per
// decodable file. Files that fail to decode are skipped and reported; they
// never abort the import.
//
// # Name lists
//
// Names are plain text, one per line. Blank lines are ignored. Use
// [ImportNames] to read a file or [ReadNames] for any io.Reader. Names are
// matched to photos by position; photos beyond the end of the list are named
// after their file (folder import) or "student_N" (grid import).
//
// # Rosters
//
// [WriteRoster] and [ExportRoster] write the seating as CSV with slot, name
// and source columns, in slot order with unplaced entities last.
package io
