package app

import (
	"log"
	"mime"
)

// Minimal container images ship without /etc/mime.types, which leaves
// stylesheets served from the embedded /static tree without a usable
// Content-Type. Register the extensions our assets need up front.
func init() {
	ensureMimeType(".css", "text/css; charset=utf-8")
	ensureMimeType(".js", "text/javascript; charset=utf-8")
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		log.Printf("app: failed to register MIME type for %s: %v", ext, err)
	}
}
