package ports

import "go.trai.ch/bundler/internal/core/domain"

// ConfigLoader defines the interface for loading module configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration from the given working directory and returns the workspace.
	// A standalone module file yields a workspace with a single module.
	Load(cwd string) (*domain.Workspace, error)
}
