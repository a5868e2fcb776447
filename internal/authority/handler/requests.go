package handler

import (
	id "medsim/pkg/domain"
)

// SetAuthorityRequest is the body of PUT /authority.
type SetAuthorityRequest struct {
	Authority string `json:"authority"`

	parsed id.Identity
}

func (r *SetAuthorityRequest) Validate() error {
	authority, err := id.ParseIdentity(r.Authority)
	if err != nil {
		return err
	}
	r.parsed = authority
	return nil
}

// AuthorityResponse carries the current authority.
type AuthorityResponse struct {
	Authority string `json:"authority"`
}
