/*
Package observability provides lifecycle hooks for monitoring the virtual IDE.

Metrics exports Prometheus counters of applied and rejected actions, and
LoggingHooks writes one structured log line per action. Both return
domain.LifecycleHooks, which can be combined with Merge.
*/
package observability
