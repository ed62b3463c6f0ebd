package health

import "context"

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// ClassifierChecker runs a known comparison through the classifier.
type ClassifierChecker interface {
	SelfCheck(ctx context.Context) error
}
