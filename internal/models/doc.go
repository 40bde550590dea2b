// Package models defines the domain models for shared trip expenses.
//
// # Models
//
//   - TripDocument: the single persisted document for a trip. Families,
//     expenses and confirmed settlements all live inside it.
//   - Family: a participant group with a member count and a role.
//   - Expense: a payment made by one family on behalf of the whole trip.
//   - SplitMethod: the fair-share policy used when computing balances.
//
// # Design Principles
//
//  1. **One document per trip**: everything a trip needs is read and written
//     as a unit. Balances and transfers are derived, never stored.
//  2. **Siblings, not owners**: families and expenses reference each other by
//     ID string only.
//  3. **Versioned writes**: every document carries a version counter so the
//     storage layer can reject stale writes.
package models
