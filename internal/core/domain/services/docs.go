// Package services provides stateless domain services that do not belong to a
// single aggregate.
//
// The package includes:
//   - FuzzyMatcher: links a free-text counterpart name to a consignee directory entry
//   - NextSequenceID: derives the next scope identifier from the identifiers already issued
package services
