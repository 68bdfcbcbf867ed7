// Package event defines the normalized Wi-Fi flow event model and the
// normalizer that produces it from dissected capture rows.
//
// A Row is one dissected frame: dotted dissector field names mapped to
// string values, with "" meaning the field was absent. Normalize turns a
// row slice into a time-ordered []Event, classifying management frames by
// their type/subtype and EAPOL-Key frames into 4-way handshake steps by
// their key-info bits, with a second pass that resolves leftover EAPOL-Key
// frames by traffic direction.
//
// # Classification
//
// Rows are classified by the first matching rule: management subtype table,
// EAPOL key-info bits, EAP code presence, then OTHER. The normalizer never
// fails; malformed values degrade to defaults (timestamp 0, key-info 0).
//
// # Persistence
//
// Events carry integer-keyed CBOR tags; the eventlog package uses them for
// the .wvlog session format.
package event
