package worker

import (
	"github.com/metropower/dashboard/internal/service"
)

// StartActivityWorker subscribes the activity feed to domain events.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
