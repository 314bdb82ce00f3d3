package processing

import "errors"

var (
	ErrFetch     = errors.New("comment fetch failed")
	ErrDiscovery = errors.New("video discovery failed")
)
