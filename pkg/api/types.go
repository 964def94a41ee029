package api

import (
	"github.com/dd0wney/cluso-isolate/pkg/analysis"
	"github.com/dd0wney/cluso-isolate/pkg/isolation"
	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NetworkResponse is a generated network with its summary statistics
type NetworkResponse struct {
	*network.Network
	Stats network.Stats `json:"stats"`
}

// StatsResponse is returned by the stats endpoint
type StatsResponse struct {
	ID string `json:"id"`
	network.Stats
}

// ComponentsResponse describes the peer graph of a network
type ComponentsResponse struct {
	ID         string                `json:"id"`
	Components []*analysis.Component `json:"components"`
	Largest    int                   `json:"largest"`
	PeerDegree map[string]int        `json:"peerDegree"`
}

// IsolateResponse is a completed isolation
type IsolateResponse struct {
	NetworkID string `json:"networkId"`
	*isolation.Report
}
