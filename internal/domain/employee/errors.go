package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrApproverAccessRequired = errors.New("approver access required")
)
