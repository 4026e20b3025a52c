package gatewaytoken

import (
	authmw "worklog/pkg/platform/middleware/auth"
)

// ServiceAdapter bridges the token service into the auth middleware's
// validator contract.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*authmw.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.Claims{
		Subject: claims.Subject,
		Roles:   claims.Roles,
	}, nil
}
