package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ResponseKind tags the shape a wordlist payload arrived in.
type ResponseKind int

const (
	// Enveloped is the {"data": [...]} shape of the full wordlist endpoint.
	Enveloped ResponseKind = iota + 1
	// Bare is the plain [...] shape of the random endpoint.
	Bare
)

func (k ResponseKind) String() string {
	switch k {
	case Enveloped:
		return "enveloped"
	case Bare:
		return "bare"
	default:
		return "unknown"
	}
}

// ErrMalformedPayload is returned when a payload is neither shape or carries no data array.
var ErrMalformedPayload = errors.New("malformed wordlist payload")

// RawResponse is a decoded wordlist payload together with the shape it came in.
type RawResponse struct {
	Kind    ResponseKind
	Entries []Entry
}

// DecodeResponse decodes either an enveloped object or a bare array.
// An object without a "data" array (missing or null) is malformed.
func DecodeResponse(body []byte) (RawResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return RawResponse{}, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	switch trimmed[0] {
	case '[':
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return RawResponse{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return RawResponse{Kind: Bare, Entries: nonNil(entries)}, nil
	case '{':
		var envelope struct {
			Data *[]Entry `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return RawResponse{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if envelope.Data == nil || *envelope.Data == nil {
			return RawResponse{}, fmt.Errorf("%w: missing data array", ErrMalformedPayload)
		}
		return RawResponse{Kind: Enveloped, Entries: *envelope.Data}, nil
	default:
		return RawResponse{}, fmt.Errorf("%w: unexpected leading byte %q", ErrMalformedPayload, trimmed[0])
	}
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
