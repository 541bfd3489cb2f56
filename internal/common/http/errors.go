package http

import "errors"

var ErrBodyTooLarge = errors.New("request body too large")
