package domain

// Kind discriminates the variants of an LCE value.
type Kind int

const (
	KindLoading Kind = iota
	KindContent
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindContent:
		return "content"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// LCE is the Loading/Content/Error lifecycle of an asynchronous screen operation.
// Message is meaningful for Loading and Error, Data only for Content.
type LCE[T any] struct {
	Kind    Kind
	Message Message
	Data    T
}

// Loading builds a transient Loading value.
func Loading[T any](msg Message) LCE[T] {
	return LCE[T]{Kind: KindLoading, Message: msg}
}

// Content builds a Content value holding data.
func Content[T any](data T) LCE[T] {
	return LCE[T]{Kind: KindContent, Data: data}
}

// Failed builds an Error value. It stays observable until the next command.
func Failed[T any](msg Message) LCE[T] {
	return LCE[T]{Kind: KindError, Message: msg}
}

func (l LCE[T]) IsLoading() bool { return l.Kind == KindLoading }
func (l LCE[T]) IsContent() bool { return l.Kind == KindContent }
func (l LCE[T]) IsError() bool   { return l.Kind == KindError }
