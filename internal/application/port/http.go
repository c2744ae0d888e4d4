package port

import "net/http"

// HTTPClient performs outbound HTTP requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
