package source

import (
	fhttp "github.com/bogdanfinn/fhttp"
)

// Doer is satisfied by network.Client.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}
