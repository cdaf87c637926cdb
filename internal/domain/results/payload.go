package results

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Kind tells which shape a fetched payload has.
type Kind uint8

const (
	// KindEmptyMapping is returned for transport failures and non-2xx statuses.
	KindEmptyMapping Kind = iota
	// KindEmptySequence is returned for 2xx responses with an effectively empty body.
	KindEmptySequence
	// KindDocument carries a JSON body to decode.
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindEmptyMapping:
		return "empty_mapping"
	case KindEmptySequence:
		return "empty_sequence"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Payload is a JSON value fetched from the results service. Both empty
// sentinels mean "no data" whatever shape the caller expected.
type Payload struct {
	kind Kind
	raw  []byte
}

// Fetcher retrieves JSON documents from the results service. Implementations
// never fail: any problem is reported as an empty payload.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) Payload
}

func EmptyMapping() Payload {
	return Payload{kind: KindEmptyMapping}
}

func EmptySequence() Payload {
	return Payload{kind: KindEmptySequence}
}

// NewDocument wraps a raw JSON body. A nil or empty body is an empty sequence.
func NewDocument(raw []byte) Payload {
	if len(raw) == 0 {
		return EmptySequence()
	}
	return Payload{kind: KindDocument, raw: raw}
}

func (p Payload) Kind() Kind {
	return p.kind
}

func (p Payload) Empty() bool {
	return p.kind != KindDocument
}

func (p Payload) Bytes() []byte {
	return p.raw
}

// Decode unmarshals the document into target. Decoding an empty payload
// leaves target untouched and succeeds.
func (p Payload) Decode(target any) error {
	if p.Empty() {
		return nil
	}
	if err := sonic.Unmarshal(p.raw, target); err != nil {
		return fmt.Errorf("decode results payload: %w", err)
	}
	return nil
}
