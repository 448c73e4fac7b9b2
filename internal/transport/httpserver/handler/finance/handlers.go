package finance

import (
	financedomain "finance-app-go/internal/domain/finance"
	"finance-app-go/pkg/logger"
)

type Handlers struct {
	Finance *financedomain.Service
	log     logger.Logger
}

func New(finance *financedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Finance: finance,
		log:     log,
	}
}
