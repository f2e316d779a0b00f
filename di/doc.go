// Package di provides a small dependency injection container.
//
// Components are registered as pre-built singletons, as eager constructors
// run at registration, or as lazy constructors run once on first resolve.
// Typed access goes through the generic helpers.
//
// # Registration
//
//	c := di.NewContainer()
//	_ = c.RegisterSingleton(di.Names.Config, resolved)
//	_ = c.Register("db", func(c di.Container) (*sql.DB, error) { ... })
//
// # Resolution
//
//	cfg := di.MustResolve[*config.Resolved](c, di.Names.Config)
package di
