package query

import (
	"context"
	"net/url"
	"path"
	"strconv"
	"strings"

	"pmsconsole/shared/constant"
)

const (
	keyPrefix   = "query"
	publicScope = "public"
)

// Params are the request parameters that distinguish cached reads of one operation.
type Params map[string]string

// Set adds name unless value is empty, keeping keys of otherwise identical reads equal.
func (p Params) Set(name, value string) Params {
	if value != "" {
		p[name] = value
	}

	return p
}

func (p Params) SetInt(name string, value int64) Params {
	if value != 0 {
		p[name] = strconv.FormatInt(value, 10)
	}

	return p
}

// FromValues keys a read by the first value of every non-empty wire parameter.
func FromValues(values url.Values) Params {
	params := Params{}
	for name := range values {
		params.Set(name, values.Get(name))
	}

	return params
}

// ByID keys a read of one record.
func ByID(id int64) Params {
	return Params{}.SetInt(constant.RequestParamID, id)
}

// Encode renders parameters sorted by name.
func (p Params) Encode() string {
	values := url.Values{}
	for name, value := range p {
		values.Set(name, value)
	}

	return values.Encode()
}

// Key identifies one cached read: who reads (scope), what (entity, op) and with which parameters.
type Key struct {
	Scope  string
	Entity string
	Op     string
	Params Params
}

// String renders query:<scope>:<entity>:<op>:<params>, every part escaped so
// that ':' and glob characters only ever appear as separators and wildcards.
func (k Key) String() string {
	scope := k.Scope
	if scope == "" {
		scope = publicScope
	}

	return strings.Join([]string{
		keyPrefix,
		url.QueryEscape(scope),
		url.QueryEscape(k.Entity),
		url.QueryEscape(k.Op),
		k.Params.Encode(),
	}, ":")
}

// Match selects cached reads to invalidate. Matches apply to every scope.
type Match struct {
	Entity string
	Op     string
	Params Params
	exact  bool
}

// Entity matches every read of an entity.
func Entity(entity string) Match {
	return Match{Entity: entity}
}

// Op matches every read of one operation of an entity, whatever its parameters.
func Op(entity, op string) Match {
	return Match{Entity: entity, Op: op}
}

// Exact matches one read.
func Exact(entity, op string, params Params) Match {
	return Match{Entity: entity, Op: op, Params: params, exact: true}
}

func (m Match) pattern() string {
	parts := []string{keyPrefix, "*", url.QueryEscape(m.Entity)}

	switch {
	case m.exact:
		parts = append(parts, url.QueryEscape(m.Op), m.Params.Encode())
	case m.Op != "":
		parts = append(parts, url.QueryEscape(m.Op), "*")
	default:
		parts = append(parts, "*")
	}

	return strings.Join(parts, ":")
}

func scopePattern(scope string) string {
	return strings.Join([]string{keyPrefix, url.QueryEscape(scope), "*"}, ":")
}

func matches(pattern, key string) bool {
	ok, _ := path.Match(pattern, key)

	return ok
}

type scopeKey struct{}

// WithScope binds cached reads made with ctx to one session.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func ScopeFrom(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)

	return scope
}
