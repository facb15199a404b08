package services

import (
	"github.com/iotlab-kiit/registration-service/internal/cache"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
	"github.com/iotlab-kiit/registration-service/internal/utils"
	"github.com/iotlab-kiit/registration-service/internal/validator"
)

type defaultServiceManager struct {
	registration RegistrationService
	admin        AdminService
	export       ExportService
}

// NewDefaultServiceManager wires the concrete services.
func NewDefaultServiceManager(
	regRepo repositories.RegistrationRepository,
	notifier Notifier,
	cacheHelper *cache.CacheHelper,
	v *validator.Validator,
	logger utils.Logger,
) ServiceManager {
	return &defaultServiceManager{
		registration: NewRegistrationService(regRepo, notifier, v, logger),
		admin:        NewAdminService(regRepo, cacheHelper, logger),
		export:       NewExportService(regRepo, logger),
	}
}

func (m *defaultServiceManager) Registration() RegistrationService { return m.registration }
func (m *defaultServiceManager) Admin() AdminService               { return m.admin }
func (m *defaultServiceManager) Export() ExportService             { return m.export }
