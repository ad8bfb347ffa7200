/*
Package session keeps long-lived IDE sessions for interactive front ends.

Because dispatch is deterministic, a session is stored as nothing more than
its action log and rebuilt by replay. Live IDEs are cached in memory; local
per-session mutexes serialise access within a process and an optional
ports.DistributedLocker does the same across replicas sharing a store.
*/
package session
