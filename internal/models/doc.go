// Package models defines the domain models for settleup.
//
// # Request-scoped models
//
// A settlement computation is built from one request and discarded afterwards:
//   - Transaction: a validated row of the ledger (payer, amount, per-person shares)
//   - BalanceSheet: per-person paid, consumed and net amounts
//   - Transfer: one recommended payment from a debtor to a creditor
//   - Settlement: a BalanceSheet plus the ordered list of Transfers
//
// People are identified by case-sensitive name strings. Every model that holds
// per-person values also keeps the people slice so output follows input order.
//
// # Stored models
//
//   - Receipt: the outcome of one settlement, written when the caller asks for it.
//     Receipts are never read back into a computation.
//
// All amounts are money.Cents.
package models
