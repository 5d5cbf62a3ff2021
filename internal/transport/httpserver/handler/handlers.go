package handler

import (
	attendancedomain "evac-app-go/internal/domain/attendance"
	occupancydomain "evac-app-go/internal/domain/occupancy"
	registrydomain "evac-app-go/internal/domain/registry"
	"evac-app-go/pkg/logger"
)

type Handlers struct {
	Attendance *attendancedomain.Service
	Occupancy  *occupancydomain.Service
	Registry   *registrydomain.Service

	log logger.Logger
}

func New(attendance *attendancedomain.Service, occupancy *occupancydomain.Service, registry *registrydomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Attendance: attendance,
		Occupancy:  occupancy,
		Registry:   registry,
		log:        log,
	}
}
