// Package loader manages feature registration.
//
// Each feature package (pos, catalog, orders) exposes a NewFeature
// constructor; the start command registers them with a Manager, which wires
// their routes onto the shared Fiber app in a fixed order.
package loader
