package site

import "errors"

var ErrSiteNotFound = errors.New("construction site not found")
