// Package provider describes the remote financial-data service: the fixed set
// of endpoints the dashboard reads and the error every failed call produces.
package provider

import (
	"errors"
	"fmt"
)

type Endpoint string

const (
	EndpointProfile           Endpoint = "/profile"
	EndpointQuote             Endpoint = "/quote"
	EndpointKeyMetricsTTM     Endpoint = "/key-metrics-ttm"
	EndpointRatiosTTM         Endpoint = "/ratios-ttm"
	EndpointBiggestGainers    Endpoint = "/biggest-gainers"
	EndpointBiggestLosers     Endpoint = "/biggest-losers"
	EndpointMostActives       Endpoint = "/most-actives"
	EndpointSectorPerformance Endpoint = "/sector-performance-snapshot"
	EndpointNews              Endpoint = "/news/stock-latest"
)

// DateScoped reports whether the endpoint needs today's date as a query parameter.
func (e Endpoint) DateScoped() bool {
	return e == EndpointSectorPerformance
}

type ErrorKind int

const (
	// KindTransport is a network failure before a response arrived.
	KindTransport ErrorKind = iota
	// KindStatus is a non-2xx response or an error reported in the body.
	KindStatus
	// KindDecode is a body that does not match the endpoint's record shape.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

type Error struct {
	Endpoint   Endpoint
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s error: %s", e.Endpoint, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a provider error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}
