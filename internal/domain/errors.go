package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a request violates the topology shape
	ErrInvalidRequest = errors.New("invalid topology request")
)

// RequestLoadError is returned when the request document is missing or unreadable
type RequestLoadError struct {
	Path string
	Err  error
}

func (e *RequestLoadError) Error() string {
	return fmt.Sprintf("%s required: %v", e.Path, e.Err)
}

func (e *RequestLoadError) Unwrap() error {
	return e.Err
}

// UnknownTopologyError is returned for any topology other than dst_access_l2
type UnknownTopologyError struct {
	Topology string
}

func (e *UnknownTopologyError) Error() string {
	return fmt.Sprintf("invalid topology: %s", e.Topology)
}

// UnknownDeviceError is returned when no specification exists for a device model
type UnknownDeviceError struct {
	Device string
	Err    error
}

func (e *UnknownDeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid device %s: %v", e.Device, e.Err)
	}
	return fmt.Sprintf("invalid device %s", e.Device)
}

func (e *UnknownDeviceError) Unwrap() error {
	return e.Err
}

// UnknownLocationError is returned when a location has no site code mapping
type UnknownLocationError struct {
	Location string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location: %q", e.Location)
}

// MissingOptionError is returned when a required source option is absent
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("all options required: missing %q", e.Option)
}
