package usecase

import "github.com/mweegram/tickful/pkg/domain/interfaces"

// Percentage is exported for testing
var Percentage = percentage

// Repo is exported so tests can reach the backing store for setup and
// verification.
func (uc *UseCases) Repo() interfaces.Repository {
	return uc.repo
}
