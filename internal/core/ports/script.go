package ports

import "go.trai.ch/uifirst/internal/core/domain"

// ScriptLoader reads recorded frame sequences.
//
//go:generate go run go.uber.org/mock/mockgen -source=script.go -destination=mocks/mock_script.go -package=mocks
type ScriptLoader interface {
	// Load parses the script at path.
	Load(path string) (*domain.Script, []byte, error)
}
