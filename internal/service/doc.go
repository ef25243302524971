// Package service holds the domain services for events, guests, tasks and
// the budget.
//
// Every service writes through an injected store, serialises its own writes,
// and republishes the full list to its live feed after each committed write,
// so subscribers never need to reload by hand. Deleting a missing id is a
// silent no-op everywhere; updating one returns a *models.NotFoundError.
package service
