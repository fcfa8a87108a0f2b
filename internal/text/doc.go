// Package text defines the position and span vocabulary shared by the
// motion and text-object resolvers, the operator table, and the host
// adapter, together with the read-only View contract through which all
// buffer content is observed.
//
// Positions are 0-indexed with columns measured in runes. A View is a
// snapshot: resolvers never mutate it and never hold it across events.
package text
