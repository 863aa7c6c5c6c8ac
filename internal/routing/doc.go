// Package routing holds the publish/subscribe routing table of an endpoint.
//
// A Registry maps each event type to the single logical endpoint that is
// authoritative for publishing it. The table is built during endpoint
// configuration, where two different publishers claiming the same event type
// is a configuration error, and then frozen. After Freeze the registry is a
// read-only lookup used by the publish/dispatch subsystem.
//
// Registration is safe for concurrent use, so modules may contribute routes in
// parallel. Freeze does not wait for in-flight writers: the host finishes all
// registration work before calling it.
package routing
