// Package identity parses, formats and compares module and type identities.
//
// # Module identities
//
// A module identity is persisted as "Name/Major.Minor[.Build[.Revision]]":
//
//	id, err := identity.ParseModuleIdentity("Acme.Billing/2.1.0")
//	identity.FormatModuleIdentity(id) // "Acme.Billing/2.1.0"
//
// Unspecified build and revision components hold Undefined, which is not
// the same as zero. IsSameAs treats an undefined revision as a wildcard and
// a missing version as "any version".
//
// # Type identities
//
// Qualified type names follow this grammar:
//
//	qualified   := typeSpec [ "," moduleSpec ]
//	typeSpec    := name [ genericArgs ] { "[]" | "[*]" | "[,...]" | "*" | "&" }
//	genericArgs := "[" ( "[" qualified "]" | typeSpec ) { "," ... } "]"
//	moduleSpec  := moduleName { "," key "=" value }
//
// Nested types join with "+", and "\" escapes a grammar character inside a
// name. CanonicalizeTypeIdentity removes the build-specific decoration
// (Version, Culture, PublicKeyToken) so the result is stable across rebuilds.
//
// All functions are pure and safe for concurrent use.
package identity
