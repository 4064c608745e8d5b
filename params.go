package payapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Timestamp is a point in time as the API transmits it: integer Unix seconds.
type Timestamp int64

// NewTimestamp converts a time.Time into an API timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Time returns the timestamp as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Metadata holds caller-defined string annotations attached to a resource.
// The API stores them verbatim and never interprets them.
type Metadata map[string]string

// EncodeValues encodes metadata as metadata[key]=value form fields.
func (m Metadata) EncodeValues(key string, v *url.Values) error {
	for k, val := range m {
		v.Set(fmt.Sprintf("%s[%s]", key, k), val)
	}
	return nil
}

// RangeQuery bounds a timestamp-valued filter. Zero bounds are omitted from
// the encoded query, so a partially filled range is valid.
type RangeQuery struct {
	GreaterThan        Timestamp `url:"gt,omitempty" json:"gt,omitempty"`
	GreaterThanOrEqual Timestamp `url:"gte,omitempty" json:"gte,omitempty"`
	LessThan           Timestamp `url:"lt,omitempty" json:"lt,omitempty"`
	LessThanOrEqual    Timestamp `url:"lte,omitempty" json:"lte,omitempty"`
}

// EncodeParams serializes a params struct into url.Values. Fields left at
// their zero value or nil are omitted entirely, never emitted empty. A nil
// params value encodes to an empty set.
func EncodeParams(params any) (url.Values, error) {
	if params == nil {
		return url.Values{}, nil
	}
	return query.Values(params)
}

// String returns a pointer to s, for optional params fields.
func String(s string) *string { return &s }

// Int64 returns a pointer to i, for optional params fields.
func Int64(i int64) *int64 { return &i }

// Bool returns a pointer to b, for optional params fields.
func Bool(b bool) *bool { return &b }
