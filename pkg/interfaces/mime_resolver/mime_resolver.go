package mime_resolver

type Resolver interface {
	Lookup(token string) string
}

type Function func(string) string

func (f Function) Lookup(token string) string {
	return f(token)
}
