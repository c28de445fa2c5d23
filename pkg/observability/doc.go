/*
Package observability turns lifecycle events into logs and Prometheus metrics.

LogHooks and Metrics.Hooks return domain.LifecycleHooks that can be merged and handed to
aura.New; Metrics.Middleware instruments the bank's HTTP routes.
*/
package observability
