package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-lab/internal/strategy Strategy
//go:generate mockgen -destination=./mock_diagram.go -package=mocks github.com/rxtech-lab/argo-lab/internal/diagram Renderer,Opener
