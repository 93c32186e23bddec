package catalog

import (
	"github.com/pkg/errors"

	"github.com/kalai-medical/kalaiapi/internal/domain"
)

// ErrNotFound reports that no record matched the given id. It is the
// expected miss case and maps to a 404; anything else coming out of the
// repository is a store failure and maps to a 500.
var ErrNotFound = errors.New("catalog: record not found")

// IsValidation reports whether err is a field-level constraint
// violation raised before any store write.
func IsValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
