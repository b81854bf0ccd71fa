// Package modident resolves module and type identities against what a host
// has loaded.
//
// A module identity is a case-insensitive name with an optional four-part
// version. A type identity is a qualified type name with an optional module
// tail carrying volatile decoration (Version, Culture, PublicKeyToken) that
// canonicalization strips so names persist across upgrades.
//
// # Architecture Overview
//
//	modident/
//	├── identity/        Versions, module identities, type-name grammar, canonical form, matching
//	├── catalog/         Host catalog interfaces and the explicit type Registry
//	├── resolve/         ModuleResolver, TypeResolver and resource reading
//	├── textio/          Byte-stream to text reader
//	├── wasmhost/        wazero-backed catalog of WebAssembly modules
//	├── errors/          Structured error types
//	└── cmd/identify/    Diagnostic CLI
//
// # Quick Start
//
// Persist a type by its canonical name and resolve it later:
//
//	reg := catalog.NewRegistry()
//	catalog.RegisterBuiltins(reg)
//	reg.RegisterModule(identity.NewModuleIdentity("Acme", identity.NewVersion(1, 0, 0, 0))).
//	    MustRegister("Acme.Widget", reflect.TypeFor[Widget]())
//
//	name, _ := identity.CanonicalizeTypeIdentity("Acme.Widget[], Acme, Version=1.0.0.0, Culture=neutral")
//	// name == "Acme.Widget[]"
//
//	t, err := resolve.NewTypeResolver(reg).TryResolveType(name)
//
// Find a loaded module:
//
//	host, _ := wasmhost.NewHost(ctx)
//	defer host.Close(ctx)
//	host.Load(ctx, "widgets", wasmBytes)
//
//	m, ok := resolve.NewModuleResolver(host).Resolve(identity.NameOnly("acme:widgets"))
//
// # Logging
//
// Packages that log expose SetLogger and default to a no-op zap logger.
package modident
