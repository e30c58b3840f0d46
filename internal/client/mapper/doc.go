// Package mapper converts between remote DTOs, domain models and cache rows.
//
// Every function is pure. For each entity there are four directions:
// DTO to model, model to row, DTO to row (defined as the composition of the
// first two) and row to model. Absent timestamps stay absent.
package mapper
