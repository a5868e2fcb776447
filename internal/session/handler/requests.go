package handler

import (
	id "medsim/pkg/domain"
)

// StartRequest is the body of POST /sessions.
type StartRequest struct {
	SessionID    string   `json:"session_id"`
	ScenarioID   string   `json:"scenario_id"`
	Participants []string `json:"participants"`

	parsedSessionID  id.SessionID
	parsedScenarioID id.ScenarioID
}

func (r *StartRequest) Validate() error {
	sessionID, err := id.ParseSessionID(r.SessionID)
	if err != nil {
		return err
	}
	scenarioID, err := id.ParseScenarioID(r.ScenarioID)
	if err != nil {
		return err
	}
	r.parsedSessionID = sessionID
	r.parsedScenarioID = scenarioID
	return nil
}
