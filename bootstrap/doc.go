// Package bootstrap runs the babelink process lifecycle.
//
// NewApp applies config defaults and initializes the logger. Run starts the
// registered components in order, prints the startup summary, waits for
// SIGINT/SIGTERM and stops the components in reverse order.
//
//	a, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
//	    return err
//	}
//	return a.Run(ctx)
package bootstrap
