package term

import (
	"github.com/propertyplus/propclient/internal/flow"
	"github.com/propertyplus/propclient/pkg/propsdk"
)

// asFlowError maps an SDK error onto the flow package's taxonomy: backend
// rejections become RejectedError so controllers surface the backend
// message verbatim, transport faults pass through and get the generic
// treatment.
func asFlowError(err error) error {
	if err == nil {
		return nil
	}
	if propsdk.IsRejection(err) {
		return &flow.RejectedError{Message: err.Error()}
	}
	return err
}
