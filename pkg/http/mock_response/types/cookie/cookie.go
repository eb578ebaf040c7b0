package cookie

import (
	"net/http"
	"time"
)

type Options struct {
	Domain   string
	Path     string
	Expires  time.Time
	MaxAge   int
	Secure   bool
	HttpOnly bool
	Signed   bool
	SameSite http.SameSite
}

type Cookie struct {
	Value   string
	Options *Options
}
