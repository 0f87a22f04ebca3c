package structures

type Route struct {
	Method string
	Url    string
}
