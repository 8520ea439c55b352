package dynamodb

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/errors"
)

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException

	return errors.As(err, &ccf)
}

// classify maps a failed conditional write to onConditionFailed and wraps
// every other SDK error with op.
func classify(err error, op string, onConditionFailed *domainerrors.AppError) error {
	if isConditionalCheckFailed(err) {
		return onConditionFailed.WrapMessage(op)
	}

	return errors.Wrap(err, op)
}
