package handlers

import (
	"net/http"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/zones"
)

type zonesResponse struct {
	Region entities.Region       `json:"initial_region"`
	Levels []entities.AlertLevel `json:"levels"`
	Zones  []entities.Zone       `json:"zones"`
}

// HandleZones handles GET /v1/zones.
func HandleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, zonesResponse{
		Region: zones.InitialRegion,
		Levels: zones.Levels(),
		Zones:  zones.All(),
	})
}

// NewAgentInfoHandler serves the configured model and sampling parameters.
func NewAgentInfoHandler(info agent.Info) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}
