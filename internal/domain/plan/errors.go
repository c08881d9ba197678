package plan

import "errors"

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanNameExists = errors.New("plan name already exists")
	ErrPlanInactive   = errors.New("plan is not active")
)
