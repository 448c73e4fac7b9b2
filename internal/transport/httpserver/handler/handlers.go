package handler

import (
	financedomain "finance-app-go/internal/domain/finance"
	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/internal/transport/httpserver/handler/common"
	"finance-app-go/internal/transport/httpserver/handler/finance"
	"finance-app-go/pkg/logger"
)

type Handlers struct {
	Common  *common.Handlers
	Finance *finance.Handlers
}

func New(financeService *financedomain.Service, userService *userdomain.Service, log logger.Logger) *Handlers {
	var profiles common.ProfileReader
	if userService != nil {
		profiles = userService
	}

	return &Handlers{
		Common:  common.New(profiles, log),
		Finance: finance.New(financeService, log),
	}
}
