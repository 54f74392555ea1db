// Package pkg provides the core libraries for the Roomcraft design engine.
//
// # Overview
//
// Roomcraft scores interior design styles against user preferences, keeps
// furniture placement inside a bounded 2-D room, and filters suggestions
// against a budget ceiling. The pkg directory is organized by concern:
//
//  1. [design] - Domain types (preferences, rooms, budgets, recommendations)
//  2. [catalog] - Style reference data and TOML catalog loading
//  3. [match] - Style scoring and ranking
//  4. [spatial] - Boundary-checked furniture placement
//  5. [budget] - Allocation tracking and budget-aware filtering
//  6. [recommend] - Recommendation composition
//  7. [pipeline] - Orchestration (match → compose → budget pass)
//  8. [cache], [session], [errors], [observability], [render] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through Roomcraft:
//
//	Preferences + Room + Budget
//	         ↓
//	   match.Match (ranked styles)
//	         ↓
//	   recommend.Composer.Compose (ordered recommendations)
//	         ↓
//	   budget.FilterByBudget (explicit, separate pass)
//	         ↓
//	   Ranked recommendation list
//
// Room edits flow through the spatial engine's hit-test/propose/commit
// protocol and trigger a wholesale recompute of the recommendation list.
package pkg
