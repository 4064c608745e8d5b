// Package payapi defines the resource types and operations of the payments
// API, along with the Backend seam used to perform authenticated calls. The
// HTTP implementation of Backend lives in the client package.
package payapi

// Object is implemented by every API resource. Generic list, expansion and
// caching infrastructure uses it to address resources of any kind.
type Object interface {
	// ObjectID returns the unique identifier of the resource.
	ObjectID() string
	// ObjectType returns the resource's type tag, e.g. "transfer".
	ObjectType() string
}
