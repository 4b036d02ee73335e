// Package blueprint converts blueprint exchange strings to and from
// [belt.Grid].
//
// An exchange string is a version byte ('0') followed by the standard
// base64 encoding of a zlib stream holding the blueprint JSON:
//
//	{"blueprint": {"entities": [...], "version": 281479275675648, ...}}
//
// [Decode] keeps the whole document. [Blueprint.Grid] builds a grid from the
// belts, underground belts and splitters in it, using each entity_number as
// the grid entity ID, and ignores everything else. After propagation,
// [Blueprint.Apply] writes the resolved priorities back as input_priority
// and [Blueprint.Encode] produces a new exchange string. Fields the package
// does not understand are carried through unchanged.
//
// Positions in a blueprint are entity centres. Blueprints from game version
// 2.0 onwards use sixteen direction steps instead of eight; Grid handles
// both.
package blueprint
