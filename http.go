package streamer

import (
	"net/http"
	"os"

	"github.com/juanfont/cef-streamer/pkg/cef"
)

// ExtensionsFromHTTPRequest describes an incoming request with the
// request, requestMethod, requestContext (user agent), dhost (Host header)
// and shost (this machine) extensions.
func ExtensionsFromHTTPRequest(req *http.Request) cef.Extensions {
	uri := req.RequestURI
	if uri == "" {
		uri = req.URL.RequestURI()
	}
	return ExtensionsFromParams(req.Method, uri, req.Host, req.UserAgent())
}

func ExtensionsFromParams(method, uri, host, agent string) cef.Extensions {
	return cef.Extensions{
		{Key: "request", Value: uri},
		{Key: "requestMethod", Value: method},
		{Key: "requestContext", Value: agent},
		{Key: "dhost", Value: host},
		{Key: "shost", Value: localHostname()},
	}
}

func localHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return hostname
}
