// Package archive provides the minimal archive-store capability the editor
// needs: enumerate and read the members of a zip container, and produce a new
// container with exactly one member replaced.
//
// Archives are never mutated in place. Replace copies every untouched member
// byte-for-byte (raw, without recompression) so member order, compression
// scheme and timestamps survive, and writes the replacement member with its
// original header and deflate compression. Given identical inputs the output
// is byte-identical, which the render idempotence guarantee relies on.
package archive
