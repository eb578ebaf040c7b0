package mime

import (
	"mime"
	"strings"
)

const DefaultType = "application/octet-stream"

// Types takes precedence over the system MIME tables, which differ between
// hosts.
var Types = map[string]string{
	"bin":  "application/octet-stream",
	"css":  "text/css",
	"csv":  "text/csv",
	"form": "application/x-www-form-urlencoded",
	"gif":  "image/gif",
	"htm":  "text/html",
	"html": "text/html",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"js":   "text/javascript",
	"json": "application/json",
	"md":   "text/markdown",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"text": "text/plain",
	"txt":  "text/plain",
	"xml":  "application/xml",
	"zip":  "application/zip",
}

type Resolver struct {
	Default string
}

// Lookup resolves a file extension or a file name to a content type.
func (resolver *Resolver) Lookup(token string) string {
	extension := strings.ToLower(strings.TrimSpace(token))
	if index := strings.LastIndexByte(extension, '.'); index != -1 {
		extension = extension[index+1:]
	}

	if contentType, ok := Types[extension]; ok {
		return contentType
	}

	if extension != "" {
		if contentType := mime.TypeByExtension("." + extension); contentType != "" {
			return contentType
		}
	}

	if resolver != nil && resolver.Default != "" {
		return resolver.Default
	}
	return DefaultType
}
