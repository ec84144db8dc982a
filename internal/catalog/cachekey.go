package catalog

import "net/url"

// cacheKey deterministically encodes an endpoint plus its full parameter
// set. url.Values.Encode sorts keys, so identical parameter combinations
// always yield identical keys and distinct combinations never collide.
func cacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
