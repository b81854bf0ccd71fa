// Package resolve maps module and type identities to what the host has
// loaded.
//
// ModuleResolver matches a ModuleIdentity against every module in a
// catalog.ModuleCatalog using identity.IsSameAs. By default the first match
// in catalog order wins; Config.Policy = PreferHighest picks the highest
// version among matches instead.
//
// TypeResolver hands a type identity string to a catalog.TypeCatalog and
// classifies the outcome:
//
//	t, err := resolve.NewTypeResolver(reg).TryResolveType("Acme.Widget, Acme, Version=1.0.0.0")
//	switch {
//	case errors.IsKind(err, errors.KindTypeNotFound):
//		// parsed, nothing registered
//	case errors.IsKind(err, errors.KindMalformedIdentity):
//		// the catalog rejected the string
//	}
//
// Resolution is synchronous and holds no shared mutable state.
package resolve
