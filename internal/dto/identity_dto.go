package dto

import "github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"

type ClaimRequest struct {
	Username string `json:"username"`
}

type ClaimResponse struct {
	Identity identity.Identity `json:"identity"`
	Token    string            `json:"token"`
}
