// Package design defines the core domain types for Roomcraft.
//
// This package is the serialization boundary between the engine and its
// consumers: every type carries JSON tags and is the canonical wire format
// for API responses, project files, and session state.
//
// # Core Types
//
//   - [StylePreferences]: the user's stated style, color, and material choices
//   - [DesignStyle]: a catalog entry describing a named design style
//   - [Room], [FurnitureItem]: the 2-D room model and its contents
//   - [Budget]: total plus per-category allocations
//   - [Recommendation]: a ranked design suggestion with a kind-dependent payload
//
// # Value Semantics
//
// Room, Budget, and Recommendation values are treated as immutable by
// convention: engine operations return fresh values instead of mutating
// their inputs. Use the Clone methods when a deep copy is needed to
// preserve that guarantee across an ownership boundary.
//
// # Units
//
// Room and furniture dimensions are in feet. Positions are room-plane
// coordinates with the origin at the room's top-left corner. Prices and
// budget amounts are in the budget's currency.
package design
