package mapping

import "errors"

var ErrMappingNotFound = errors.New("attendance mapping not found")
