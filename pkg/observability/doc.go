/*
Package observability turns tour lifecycle hooks into metrics and logs.

A Collector owns Prometheus instruments fed by domain.LifecycleHooks; LogHooks
emits the same records as structured log lines. Chain combines several hook sets
so a tour can be logged and measured at once:

	c := observability.NewCollector(prometheus.DefaultRegisterer)
	hooks := observability.Chain(c.Hooks(), observability.LogHooks(logger))
	t, _ := tour.New(reg, opts, tour.WithLifecycleHooks(hooks))
*/
package observability
