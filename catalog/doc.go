// Package catalog defines the host catalog consulted by resolution and an
// explicit in-memory implementation of it.
//
// Go has no runtime lookup of types by name, so the host registers the
// types it wants resolvable at startup:
//
//	reg := catalog.NewRegistry()
//	catalog.RegisterBuiltins(reg)
//
//	acme := reg.RegisterModule(identity.NewModuleIdentity("Acme.Core", identity.NewVersion(1, 2, 0, 0)))
//	acme.MustRegister("Acme.Widget", reflect.TypeFor[Widget]())
//	acme.MustRegister("Acme.Widget+Part", reflect.TypeFor[WidgetPart]())
//
//	t, err := reg.LookupType("Acme.Widget[], Acme.Core, Version=1.2.0.0")
//	// t == reflect.TypeFor[[]Widget]()
//
// Generic instantiations resolve either from an exact registration of the
// canonical instantiated name or from a Constructor registered for the
// generic definition.
package catalog
