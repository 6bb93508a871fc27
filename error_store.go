package paramcache

import "context"

// errorStore is returned when a driver fails to initialize; it preserves
// the driver identity while surfacing the construction error on every
// fetch.
type errorStore struct {
	driver Driver
	err    error
}

func (e *errorStore) Driver() Driver { return e.driver }

func (e *errorStore) FetchParameters(context.Context, []string, bool) (map[string]string, error) {
	return nil, e.err
}
