// Package domain contains the core types and pure functions of the water
// health monitor: persisted records, feature-vector validation, the rule-based
// risk scorer, and the alert threshold rules. Nothing in this package touches
// a store, a socket, or a clock; orchestration lives in the service and risk
// packages.
package domain
