// Package fixtures provides read-only access to the on-disk fixture tree
// that drives the harness: fixture programs, project manifests, recorded
// trace files, and the expected-output file each of them maps to.
//
// The tree is enumerated once into a Catalog at startup; discovery order is
// stable (lexicographic by filename) so that runs over an unchanged tree are
// reproducible.
//
// # Fixture tree layout
//
//	manifests/*.toml            project-configuration fixtures
//	src/bin/*.rs                binary fixture sources (only the stem matters)
//	traces/*.trace              recorded trace fixtures
//	out/<name>.run              expected output for a binary or manifest fixture
//	out/trace-<name>.run        expected output for a trace fixture
//	Cargo.toml                  the active configuration, overwritten per run
//
// Expected-output files hold one literal string per line; every line must
// appear as a substring of the tool's captured output for the fixture to
// pass.
package fixtures
