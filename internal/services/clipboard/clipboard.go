// Package clipboard is the boundary between snapshot assembly and the
// system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier receives the assembled document for the paste-ready workflow.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier over github.com/atotto/clipboard.
type Service struct{}

// NewService returns the system-clipboard implementation.
func NewService() *Service {
	return &Service{}
}

// Copy places text on the system clipboard, replacing its contents.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
