// Package encoded implements the prefixed Base58Check strings used for
// addresses, hashes and chain identifiers, and the script expression hash of
// packed Michelson values.
//
// A string is base58(prefix || payload || checksum) where checksum is the first
// four bytes of a double SHA-256 over prefix || payload. The prefix bytes are
// chosen so the encoded string starts with a readable tag such as "tz1" or
// "expr".
package encoded
