package main

import "github.com/minely/moderator/pkg/dashboard"

// Wire types of the moderator JSON API.

type listResponse[T any] struct {
	Items      []T                   `json:"items" yaml:"items"`
	Size       int                   `json:"size" yaml:"size"`
	Filter     string                `json:"filter" yaml:"filter"`
	EmptyState *dashboard.EmptyState `json:"emptyState,omitempty" yaml:"emptyState,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
