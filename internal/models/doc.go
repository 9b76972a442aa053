// Package models defines the core domain models for SplitSmart.
//
// # Entities
//
//   - User: a registered person, identified by a unique email
//   - Group: a set of members who share expenses
//   - Expense: one shared expense with a payer and per-member shares
//   - Settlement: a cash payment between two members
//   - DebtRecord: one simplified transfer, derived and never persisted
//
// # Design Principles
//
//  1. Entities reference each other by ID strings, never by pointers,
//     to keep them trivially serializable and free of cycles.
//  2. Expense and Settlement are immutable once created: the ledger is
//     append-only, and every derived value (balances, simplified debts)
//     is recomputed from scratch rather than patched in place.
//  3. The split configuration travels with the expense so a persisted
//     ledger can be reloaded and re-validated without extra context.
package models
